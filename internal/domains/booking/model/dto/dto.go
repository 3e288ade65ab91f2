package dto

import (
	"errors"
	"rentopia/internal/domains/booking/model"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	gModel "rentopia/shared/model"
	"rentopia/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate  = timezone.ErrInvalidDate
	ErrInvalidRange = errors.New("check-out must be after check-in")
)

type CreateBookingRequest struct {
	Place          string `json:"place"          validate:"required,uuid"`
	CheckIn        string `json:"checkIn"        validate:"required,stay_date"`
	CheckOut       string `json:"checkOut"       validate:"required,stay_date"`
	NumberOfGuests int    `json:"numberOfGuests" validate:"required,min=1,max=100"`
	Name           string `json:"name"           validate:"required,max=100"`
	Phone          string `json:"phone"          validate:"required,max=20"`
}

// Dates parses the requested stay. Both ends are truncated to calendar dates.
func (r *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = ParseDate(r.CheckIn); err != nil {
		return checkIn, checkOut, err
	}

	if checkOut, err = ParseDate(r.CheckOut); err != nil {
		return checkIn, checkOut, err
	}

	if !checkIn.Before(checkOut) {
		return checkIn, checkOut, ErrInvalidRange
	}

	return checkIn, checkOut, nil
}

func (r *CreateBookingRequest) ToModel(userID string, checkIn, checkOut time.Time, nightlyPrice float64, now time.Time) model.Booking {
	booking := model.Booking{
		ID:             uuid.NewString(),
		PlaceID:        r.Place,
		UserID:         userID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: r.NumberOfGuests,
		Name:           strings.TrimSpace(r.Name),
		Phone:          strings.TrimSpace(r.Phone),
		Status:         model.StatusPendingPayment,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
	booking.Price = float64(booking.Nights()) * nightlyPrice

	return booking
}

// ParseDate accepts a plain date or an RFC3339 timestamp and keeps only its calendar date.
func ParseDate(value string) (time.Time, error) {
	return timezone.ParseDate(value) //nolint:wrapcheck
}

// OverlapFilter matches active bookings of placeID whose stay collides with [checkIn, checkOut].
// Touching stays collide unless sameDayTurnover is set.
func OverlapFilter(placeID string, checkIn, checkOut time.Time, sameDayTurnover bool) gDto.FilterGroup {
	startsBefore, endsAfter := gDto.FilterOperatorLessEq, gDto.FilterOperatorGreaterEq
	if sameDayTurnover {
		startsBefore, endsAfter = gDto.FilterOperatorLess, gDto.FilterOperatorGreater
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldPlaceID, Operator: gDto.FilterOperatorEq, Value: placeID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: model.ActiveStatuses, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckIn, ArgName: "new_check_out", Operator: startsBefore, Value: checkOut, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckOut, ArgName: "new_check_in", Operator: endsAfter, Value: checkIn, Table: model.TableName},
		},
	}
}

type ConfirmPaymentRequest struct {
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	OrderID   string `json:"razorpay_order_id"   validate:"omitempty"`
	Signature string `json:"razorpay_signature"  validate:"required"`
}

type PlaceSummary struct {
	ID      string   `json:"_id"`
	Title   string   `json:"title"`
	Address string   `json:"address"`
	Photos  []string `json:"photos"`
	Owner   string   `json:"owner"`
}

// BookingResponse.Place holds the place id, or a PlaceSummary when the place was joined.
type BookingResponse struct {
	ID             string  `json:"_id"`
	Place          any     `json:"place"`
	User           string  `json:"user"`
	CheckIn        string  `json:"checkIn"`
	CheckOut       string  `json:"checkOut"`
	NumberOfGuests int     `json:"numberOfGuests"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Price          float64 `json:"price"`
	Status         string  `json:"status"`
	CancelledAt    *string `json:"cancelledAt"`
	PaymentOrderID *string `json:"paymentOrderId,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.Place = m.PlaceID
	r.User = m.UserID
	r.CheckIn = m.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = m.CheckOut.Format(constant.DateOnlyFormat)
	r.NumberOfGuests = m.NumberOfGuests
	r.Name = m.Name
	r.Phone = m.Phone
	r.Price = m.Price
	r.Status = m.Status
	r.PaymentOrderID = m.PaymentOrderID
	r.Metadata.FromModel(m.Metadata)

	if m.CancelledAt != nil {
		cancelledAt := m.CancelledAt.Format(constant.DateFormat)
		r.CancelledAt = &cancelledAt
	}
}

func (r *BookingResponse) FromModelWithPlace(m model.BookingWithPlace) {
	r.FromModel(m.Booking)

	r.Place = PlaceSummary{
		ID:      m.PlaceID,
		Title:   m.PlaceTitle,
		Address: m.PlaceAddress,
		Photos:  append([]string{}, m.PlacePhotos...),
		Owner:   m.PlaceOwnerID,
	}
}
