package model

import (
	"rentopia/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "places"
	EntityName = "place"

	FieldID           = "id"
	FieldOwnerID      = "owner_id"
	FieldTitle        = "title"
	FieldAddress      = "address"
	FieldPhotos       = "photos"
	FieldDescription  = "description"
	FieldPerks        = "perks"
	FieldExtraInfo    = "extra_info"
	FieldCheckIn      = "check_in"
	FieldCheckOut     = "check_out"
	FieldMaxGuests    = "max_guests"
	FieldPrice        = "price"
	FieldPropertyType = "property_type"
)

const ListingPhotoLimit = 3

type Place struct {
	ID           string         `db:"id"`
	OwnerID      string         `db:"owner_id"`
	Title        string         `db:"title"`
	Address      string         `db:"address"`
	Photos       pq.StringArray `db:"photos"`
	Description  string         `db:"description"`
	Perks        pq.StringArray `db:"perks"`
	ExtraInfo    string         `db:"extra_info"`
	CheckIn      string         `db:"check_in"`
	CheckOut     string         `db:"check_out"`
	MaxGuests    int            `db:"max_guests"`
	Price        float64        `db:"price"`
	PropertyType string         `db:"property_type"`
	model.Metadata
}
