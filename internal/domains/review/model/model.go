package model

import (
	"rentopia/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID            = "id"
	FieldPlaceID       = "place_id"
	FieldUserID        = "user_id"
	FieldBookingID     = "booking_id"
	FieldRating        = "rating"
	FieldCleanliness   = "cleanliness"
	FieldCommunication = "communication"
	FieldLocation      = "location"
	FieldValue         = "value"
	FieldComment       = "comment"
)

type Review struct {
	ID            string  `db:"id"`
	PlaceID       string  `db:"place_id"`
	UserID        string  `db:"user_id"`
	BookingID     *string `db:"booking_id"`
	Rating        int     `db:"rating"`
	Cleanliness   *int    `db:"cleanliness"`
	Communication *int    `db:"communication"`
	Location      *int    `db:"location"`
	Value         *int    `db:"value"`
	Comment       string  `db:"comment"`
	model.Metadata
}

// ReviewWithUser carries the reviewer's display name.
type ReviewWithUser struct {
	Review
	UserName string `column:"name" db:"user_name" table:"users"`
}

func (ReviewWithUser) GetJoinQuery() string {
	return "JOIN users ON users.id = reviews.user_id"
}
