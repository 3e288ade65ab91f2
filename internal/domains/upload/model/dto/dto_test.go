package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentopia/internal/domains/upload/model/dto"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPhoto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fileName   string
		data       []byte
		wantImage  bool
		wantType   string
		wantSuffix string
	}{
		{name: "png by content", fileName: "photo.jpeg", data: pngHeader, wantImage: true, wantType: "image/png", wantSuffix: ".png"},
		{name: "jpeg", fileName: "x", data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF"), wantImage: true, wantType: "image/jpeg", wantSuffix: ".jpg"},
		{name: "text keeps name extension", fileName: "notes.TXT", data: []byte("hello"), wantType: "text/plain", wantSuffix: ".txt"},
		{name: "no extension at all", fileName: "blob", data: []byte("hello"), wantType: "text/plain", wantSuffix: ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			photo := dto.NewPhoto(tt.fileName, tt.data)

			assert.True(t, strings.HasPrefix(photo.ContentType, tt.wantType), photo.ContentType)
			assert.Equal(t, tt.wantImage, photo.IsImage())
			assert.True(t, strings.HasSuffix(photo.ObjectName(), tt.wantSuffix), photo.ObjectName())
		})
	}
}

func TestPhoto_ObjectNameIsUnique(t *testing.T) {
	t.Parallel()

	photo := dto.NewPhoto("a.png", pngHeader)

	assert.NotEqual(t, photo.ObjectName(), photo.ObjectName())
}
