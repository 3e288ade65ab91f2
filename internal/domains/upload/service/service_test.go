package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentopia/config"
	otelMocks "rentopia/infras/otel/mocks"
	s3Mocks "rentopia/infras/s3/mocks"
	"rentopia/internal/domains/upload/model/dto"
	"rentopia/internal/domains/upload/service"
	"rentopia/shared/failure"
)

var (
	pngData  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	jpegData = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), bytes.Repeat([]byte{1}, 32)...)
)

func newService(t *testing.T, maxFiles int) (*s3Mocks.MockS3, service.Upload) {
	t.Helper()

	ctrl := gomock.NewController(t)
	storage := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.App.Upload.MaxFileSizeMB = 1
	cfg.App.Upload.MaxFiles = maxFiles
	cfg.App.Upload.LinkTimeoutSecs = 5

	return storage, service.New(storage, cfg, otelMocks.NewOtel())
}

type upload struct {
	name string
	data []byte
}

func fileHeaders(t *testing.T, files ...upload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range files {
		part, err := writer.CreateFormFile("photos", f.name)
		require.NoError(t, err)

		_, err = part.Write(f.data)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)

	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["photos"]
}

func failureCode(t *testing.T, err error) int {
	t.Helper()

	var fail *failure.Failure
	require.ErrorAs(t, err, &fail)

	return fail.Code
}

func TestUploadService_UploadPhotos(t *testing.T) {
	t.Parallel()

	t.Run("keeps order", func(t *testing.T) {
		t.Parallel()

		storage, svc := newService(t, 10)

		gomock.InOrder(
			storage.EXPECT().Put(gomock.Any(), dto.Directory, gomock.Any(), "image/png", pngData).
				DoAndReturn(func(_ context.Context, dir, name, _ string, _ []byte) (string, error) {
					assert.True(t, strings.HasSuffix(name, ".png"))

					return "https://cdn.example.com/" + dir + "/" + name, nil
				}),
			storage.EXPECT().Put(gomock.Any(), dto.Directory, gomock.Any(), "image/jpeg", jpegData).
				Return("https://cdn.example.com/uploads/second.jpg", nil),
		)

		res, err := svc.UploadPhotos(context.Background(), fileHeaders(t, upload{"a.png", pngData}, upload{"b.jpg", jpegData}))

		require.NoError(t, err)
		require.Len(t, res.URLs, 2)
		assert.True(t, strings.HasPrefix(res.URLs[0], "https://cdn.example.com/uploads/"))
		assert.Equal(t, "https://cdn.example.com/uploads/second.jpg", res.URLs[1])
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()

		_, svc := newService(t, 10)

		_, err := svc.UploadPhotos(context.Background(), nil)

		assert.Equal(t, http.StatusBadRequest, failureCode(t, err))
	})

	t.Run("too many files", func(t *testing.T) {
		t.Parallel()

		_, svc := newService(t, 1)

		_, err := svc.UploadPhotos(context.Background(), fileHeaders(t, upload{"a.png", pngData}, upload{"b.png", pngData}))

		assert.Equal(t, http.StatusBadRequest, failureCode(t, err))
	})

	t.Run("non image rejects the whole batch", func(t *testing.T) {
		t.Parallel()

		_, svc := newService(t, 10)

		_, err := svc.UploadPhotos(context.Background(), fileHeaders(t, upload{"a.png", pngData}, upload{"evil.png", []byte("#!/bin/sh\necho hi")}))

		assert.Equal(t, http.StatusBadRequest, failureCode(t, err))
	})

	t.Run("oversized file", func(t *testing.T) {
		t.Parallel()

		_, svc := newService(t, 10)

		big := append(append([]byte{}, pngData...), bytes.Repeat([]byte{0}, 1<<20)...)

		_, err := svc.UploadPhotos(context.Background(), fileHeaders(t, upload{"big.png", big}))

		assert.Equal(t, http.StatusBadRequest, failureCode(t, err))
	})

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		storage, svc := newService(t, 10)

		storage.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket gone"))

		_, err := svc.UploadPhotos(context.Background(), fileHeaders(t, upload{"a.png", pngData}))

		require.Error(t, err)
		assert.False(t, failure.IsFailure(err))
	})

	t.Run("storage error discards earlier photos", func(t *testing.T) {
		t.Parallel()

		storage, svc := newService(t, 10)

		const stored = "https://cdn.example.com/uploads/first.png"

		gomock.InOrder(
			storage.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), pngData).Return(stored, nil),
			storage.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), jpegData).Return("", errors.New("bucket gone")),
			storage.EXPECT().ObjectKeyFromURL(stored).Return("uploads/first.png"),
			storage.EXPECT().Delete(gomock.Any(), "uploads/first.png").Return(errors.New("still gone")),
		)

		res, err := svc.UploadPhotos(context.Background(), fileHeaders(t, upload{"a.png", pngData}, upload{"b.jpg", jpegData}))

		require.Error(t, err)
		assert.Empty(t, res.URLs)
	})
}

func TestUploadService_UploadByLink(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cabin.jpg":
			_, _ = w.Write(jpegData)
		case "/page.html":
			_, _ = w.Write([]byte("<html><body>not an image</body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	t.Run("downloads and stores", func(t *testing.T) {
		t.Parallel()

		storage, svc := newService(t, 10)

		storage.EXPECT().Put(gomock.Any(), dto.Directory, gomock.Any(), "image/jpeg", jpegData).
			Return("https://cdn.example.com/uploads/x.jpg", nil)

		res, err := svc.UploadByLink(context.Background(), dto.UploadByLinkRequest{Link: server.URL + "/cabin.jpg"})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/uploads/x.jpg", res.URL)
	})

	for _, path := range []string{"/missing.jpg", "/page.html"} {
		t.Run("rejects "+path, func(t *testing.T) {
			t.Parallel()

			_, svc := newService(t, 10)

			_, err := svc.UploadByLink(context.Background(), dto.UploadByLinkRequest{Link: server.URL + path})

			assert.Equal(t, http.StatusBadRequest, failureCode(t, err))
		})
	}

	t.Run("unreachable host", func(t *testing.T) {
		t.Parallel()

		_, svc := newService(t, 10)

		_, err := svc.UploadByLink(context.Background(), dto.UploadByLinkRequest{Link: "http://127.0.0.1:1/x.jpg"})

		assert.Equal(t, http.StatusBadRequest, failureCode(t, err))
	})
}
