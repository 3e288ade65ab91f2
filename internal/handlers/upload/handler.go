package upload

import (
	"net/http"
	"rentopia/infras/otel"
	"rentopia/internal/domains/upload/model/dto"
	"rentopia/internal/domains/upload/service"
	"rentopia/shared/constant"
	"rentopia/shared/failure"
	"rentopia/shared/validator"
	"rentopia/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Upload
	otel    otel.Otel
}

func New(service service.Upload, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/upload", handler.UploadPhotos)
	router.Post("/upload-by-link", handler.UploadByLink)
}

// UploadPhotos stores listing photos.
// @Summary Upload photos
// @Description Every file must be an image within the size limit. Nothing is stored when one of them is rejected.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param photos formData file true "Photos"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhotos")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn().Err(err).Msg("failed to remove multipart temp files")
		}
	}()

	res, err := handler.service.UploadPhotos(ctx, r.MultipartForm.File[constant.FormFilePhotos])
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload photos")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UploadByLink copies a remote image into storage.
// @Summary Upload a photo by link
// @Tags Upload
// @Accept json
// @Produce json
// @Param request body dto.UploadByLinkRequest true "Image link"
// @Success 200 {object} dto.UploadByLinkResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/upload-by-link [post]
// @Security BearerAuth
func (handler *Handler) UploadByLink(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadByLink")
	defer scope.End()

	req := dto.UploadByLinkRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadByLink(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload photo by link")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
