package dto

import (
	"rentopia/shared/constant"
	"rentopia/shared/model"
	"rentopia/shared/timezone"
)

// Metadata is the timestamp pair embedded in place and booking responses.
type Metadata struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.UpdatedAt = timezone.Format(model.ModifiedAt, constant.DateFormat)
}
