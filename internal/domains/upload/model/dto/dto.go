package dto

import (
	"path/filepath"
	"rentopia/shared/constant"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	Directory = "uploads"

	defaultExtension = ".jpg"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadByLinkRequest struct {
	Link string `json:"link" validate:"required,url"`
}

type UploadResponse struct {
	URLs []string `json:"urls"`
}

type UploadByLinkResponse struct {
	URL string `json:"url"`
}

// Photo is an image read into memory and ready to be stored.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewPhoto sniffs the content type from the bytes; the client supplied header is not trusted.
func NewPhoto(originalName string, data []byte) Photo {
	return Photo{
		Name:        originalName,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}
}

func (p Photo) IsImage() bool {
	_, ok := extensions[p.ContentType]

	return ok
}

// ObjectName returns a collision free name keeping a sensible extension.
func (p Photo) ObjectName() string {
	ext, ok := extensions[p.ContentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(p.Name))
	}

	if ext == constant.Empty {
		ext = defaultExtension
	}

	return uuid.NewString() + ext
}
