package model

import "time"

// BookingConfirmed is emitted once a booking leaves pending_payment for confirmed.
type BookingConfirmed struct {
	BookingID string `json:"booking_id"`
	PaymentID string `json:"payment_id"`
}

// SubscriptionActivated is emitted after a host subscription payment is verified.
type SubscriptionActivated struct {
	UserID      string    `json:"user_id"`
	Plan        string    `json:"plan"`
	PlanLabel   string    `json:"plan_label"`
	AmountPaise int64     `json:"amount_paise"`
	PaymentID   string    `json:"payment_id"`
	Expiry      time.Time `json:"expiry"`
}
