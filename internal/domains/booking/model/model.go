package model

import (
	"rentopia/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldPlaceID        = "place_id"
	FieldUserID         = "user_id"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldNumberOfGuests = "number_of_guests"
	FieldName           = "name"
	FieldPhone          = "phone"
	FieldPrice          = "price"
	FieldStatus         = "status"
	FieldCancelledAt    = "cancelled_at"
	FieldPaymentOrderID = "payment_order_id"
	FieldPaymentID      = "payment_id"
)

const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusCancelled      = "cancelled"
	StatusPaymentFailed  = "payment_failed"
)

// ActiveStatuses hold their dates against other bookings of the same place.
var ActiveStatuses = []string{StatusConfirmed, StatusPendingPayment}

type Booking struct {
	ID             string     `db:"id"`
	PlaceID        string     `db:"place_id"`
	UserID         string     `db:"user_id"`
	CheckIn        time.Time  `db:"check_in"`
	CheckOut       time.Time  `db:"check_out"`
	NumberOfGuests int        `db:"number_of_guests"`
	Name           string     `db:"name"`
	Phone          string     `db:"phone"`
	Price          float64    `db:"price"`
	Status         string     `db:"status"`
	CancelledAt    *time.Time `db:"cancelled_at"`
	PaymentOrderID *string    `db:"payment_order_id"`
	PaymentID      *string    `db:"payment_id"`
	model.Metadata
}

// Nights is the number of nights between check in and check out.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24) //nolint:mnd
}

// BookingWithPlace is a booking row joined with the summary of its place.
type BookingWithPlace struct {
	Booking
	PlaceTitle   string         `column:"title"    db:"place_title"    table:"places"`
	PlaceAddress string         `column:"address"  db:"place_address"  table:"places"`
	PlacePhotos  pq.StringArray `column:"photos"   db:"place_photos"   table:"places"`
	PlaceOwnerID string         `column:"owner_id" db:"place_owner_id" table:"places"`
}

func (BookingWithPlace) GetJoinQuery() string {
	return "JOIN places ON places.id = bookings.place_id"
}
