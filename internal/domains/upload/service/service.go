package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"rentopia/config"
	"rentopia/infras/otel"
	"rentopia/infras/s3"
	"rentopia/internal/domains/upload/model/dto"
	"rentopia/shared/constant"
	"rentopia/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	bytesPerMB = 1 << 20

	errNoPhotos       = "No photos uploaded"
	errTooManyPhotos  = "Too many photos, at most %d per request"
	errFileTooLarge   = "File %s exceeds %d MB"
	errNotAnImage     = "File %s is not a supported image"
	errLinkUnreadable = "Could not download image from link"
)

type Upload interface {
	UploadPhotos(ctx context.Context, files []*multipart.FileHeader) (dto.UploadResponse, error)
	UploadByLink(ctx context.Context, req dto.UploadByLinkRequest) (dto.UploadByLinkResponse, error)
}

type serviceImpl struct {
	s3     s3.S3
	client *http.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(s3 s3.S3, cfg *config.Config, otel otel.Otel) Upload {
	return &serviceImpl{
		s3: s3,
		client: &http.Client{
			Timeout: time.Duration(cfg.App.Upload.LinkTimeoutSecs) * time.Second,
		},
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) maxBytes() int64 {
	return int64(s.cfg.App.Upload.MaxFileSizeMB) * bytesPerMB
}

// UploadPhotos stores every file and returns the URLs in the order received. Nothing is stored
// unless every file passes validation, and a failed store removes what the batch already wrote.
func (s *serviceImpl) UploadPhotos(ctx context.Context, files []*multipart.FileHeader) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhotos")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(files) == 0 {
		return res, failure.BadRequestFromString(errNoPhotos) // nolint:wrapcheck
	}

	if maxFiles := s.cfg.App.Upload.MaxFiles; maxFiles > 0 && len(files) > maxFiles {
		return res, failure.BadRequestFromString(fmt.Sprintf(errTooManyPhotos, maxFiles)) // nolint:wrapcheck
	}

	photos := make([]dto.Photo, 0, len(files))

	for _, header := range files {
		photo, err := s.readFile(header)
		if err != nil {
			return res, err
		}

		photos = append(photos, photo)
	}

	res.URLs = make([]string, 0, len(photos))

	for _, photo := range photos {
		url, err := s.s3.Put(ctx, dto.Directory, photo.ObjectName(), photo.ContentType, photo.Data)
		if err != nil {
			log.Error().Err(err).Str("file", photo.Name).Msg("failed to store photo")
			s.discard(ctx, res.URLs)

			return dto.UploadResponse{}, fmt.Errorf("failed to store photo: %w", err)
		}

		res.URLs = append(res.URLs, url)
	}

	log.Info().Int("count", len(res.URLs)).Msg("photos uploaded")

	return res, nil
}

// discard removes objects stored earlier in a batch that did not complete.
func (s *serviceImpl) discard(ctx context.Context, urls []string) {
	for _, url := range urls {
		key := s.s3.ObjectKeyFromURL(url)
		if key == constant.Empty {
			continue
		}

		if err := s.s3.Delete(context.WithoutCancel(ctx), key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to discard orphaned photo")
		}
	}
}

func (s *serviceImpl) readFile(header *multipart.FileHeader) (dto.Photo, error) {
	if header.Size > s.maxBytes() {
		return dto.Photo{}, failure.BadRequestFromString(fmt.Sprintf(errFileTooLarge, header.Filename, s.cfg.App.Upload.MaxFileSizeMB)) // nolint:wrapcheck
	}

	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to open uploaded file")

		return dto.Photo{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return s.readPhoto(header.Filename, file)
}

func (s *serviceImpl) readPhoto(name string, r io.Reader) (dto.Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes()+1))
	if err != nil {
		return dto.Photo{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if int64(len(data)) > s.maxBytes() {
		return dto.Photo{}, failure.BadRequestFromString(fmt.Sprintf(errFileTooLarge, name, s.cfg.App.Upload.MaxFileSizeMB)) // nolint:wrapcheck
	}

	photo := dto.NewPhoto(name, data)
	if !photo.IsImage() {
		return dto.Photo{}, failure.BadRequestFromString(fmt.Sprintf(errNotAnImage, name)) // nolint:wrapcheck
	}

	return photo, nil
}

func (s *serviceImpl) UploadByLink(ctx context.Context, req dto.UploadByLinkRequest) (res dto.UploadByLinkResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadByLink")
	defer scope.End()
	defer scope.TraceIfError(&err)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.Link, nil)
	if err != nil {
		return res, failure.BadRequestFromString(errLinkUnreadable) // nolint:wrapcheck
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		log.Warn().Err(err).Str("link", req.Link).Msg("failed to download image")

		return res, failure.BadRequestFromString(errLinkUnreadable) // nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("link", req.Link).Msg("image link did not return 200")

		return res, failure.BadRequestFromString(errLinkUnreadable) // nolint:wrapcheck
	}

	photo, err := s.readPhoto(req.Link, resp.Body)
	if err != nil {
		return res, err
	}

	res.URL, err = s.s3.Put(ctx, dto.Directory, photo.ObjectName(), photo.ContentType, photo.Data)
	if err != nil {
		log.Error().Err(err).Str("link", req.Link).Msg("failed to store linked photo")

		return res, fmt.Errorf("failed to store linked photo: %w", err)
	}

	return res, nil
}
