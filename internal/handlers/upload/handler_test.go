package upload_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "rentopia/infras/otel/mocks"
	uploadMocks "rentopia/internal/domains/upload/mocks"
	"rentopia/internal/domains/upload/model/dto"
	"rentopia/internal/handlers/upload"
)

func newRouter(t *testing.T) (*uploadMocks.MockUpload, chi.Router) {
	t.Helper()

	svc := uploadMocks.NewMockUpload(gomock.NewController(t))
	router := chi.NewRouter()

	handler := upload.New(svc, otelMocks.NewOtel())
	handler.Router(router)

	return svc, router
}

func TestHandler_UploadPhotos(t *testing.T) {
	t.Run("hands every photos part to the service", func(t *testing.T) {
		svc, router := newRouter(t)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)

		for _, name := range []string{"a.png", "b.jpg"} {
			part, err := writer.CreateFormFile("photos", name)
			require.NoError(t, err)

			_, err = part.Write([]byte("image bytes"))
			require.NoError(t, err)
		}

		require.NoError(t, writer.Close())

		svc.EXPECT().
			UploadPhotos(gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(_ context.Context, files []*multipart.FileHeader) (dto.UploadResponse, error) {
				assert.Equal(t, "a.png", files[0].Filename)

				return dto.UploadResponse{URLs: []string{"https://cdn/uploads/1.png", "https://cdn/uploads/2.jpg"}}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"urls":["https://cdn/uploads/1.png","https://cdn/uploads/2.jpg"]}}`, rec.Body.String())
	})

	t.Run("rejects a non multipart body", func(t *testing.T) {
		_, router := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_UploadByLink(t *testing.T) {
	t.Run("stores the remote image", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			UploadByLink(gomock.Any(), dto.UploadByLinkRequest{Link: "https://example.com/cat.png"}).
			Return(dto.UploadByLinkResponse{URL: "https://cdn/uploads/cat.png"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload-by-link", strings.NewReader(`{"link":"https://example.com/cat.png"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://cdn/uploads/cat.png")
	})

	t.Run("rejects something that is not a url", func(t *testing.T) {
		_, router := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload-by-link", strings.NewReader(`{"link":"cat"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
