package model

import (
	"rentopia/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                    = "id"
	FieldName                  = "name"
	FieldEmail                 = "email"
	FieldPassword              = "password"
	FieldLevel                 = "level"
	FieldLastLogin             = "last_login"
	FieldActive                = "active"
	FieldSubscriptionStatus    = "subscription_status"
	FieldSubscriptionPlan      = "subscription_plan"
	FieldSubscriptionExpiry    = "subscription_expiry"
	FieldSubscriptionPaymentID = "subscription_payment_id"
)

const (
	SubscriptionNone    = "none"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

type User struct {
	ID                    string     `db:"id"`
	Name                  string     `db:"name"`
	Email                 string     `db:"email"`
	Password              string     `db:"password"`
	Level                 string     `db:"level"`
	LastLogin             *time.Time `db:"last_login"`
	Active                bool       `db:"active"`
	SubscriptionStatus    string     `db:"subscription_status"`
	SubscriptionPlan      *string    `db:"subscription_plan"`
	SubscriptionExpiry    *time.Time `db:"subscription_expiry"`
	SubscriptionPaymentID *string    `db:"subscription_payment_id"`
	model.Metadata
}

// CanList reports whether the user holds a subscription that is active and unexpired at now.
func (u User) CanList(now time.Time) bool {
	if u.SubscriptionStatus != SubscriptionActive || u.SubscriptionExpiry == nil {
		return false
	}

	return u.SubscriptionExpiry.After(now)
}
