package dto

import (
	"rentopia/internal/domains/user/model"
	"rentopia/shared/constant"
	"rentopia/shared/timezone"
	"time"
)

type Subscription struct {
	Status    string  `json:"status"`
	Plan      *string `json:"plan,omitempty"`
	Expiry    *string `json:"expiry,omitempty"`
	PaymentID *string `json:"paymentId,omitempty"`
}

// UserResponse is the public profile shape. The password hash never leaves the service.
type UserResponse struct {
	ID           string       `json:"_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Subscription Subscription `json:"subscription"`
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email

	r.Subscription = Subscription{
		Status:    user.SubscriptionStatus,
		Plan:      user.SubscriptionPlan,
		PaymentID: user.SubscriptionPaymentID,
	}

	if r.Subscription.Status == constant.Empty {
		r.Subscription.Status = model.SubscriptionNone
	}

	if user.SubscriptionExpiry != nil {
		expiry := timezone.Format(*user.SubscriptionExpiry, constant.DateFormat)
		r.Subscription.Expiry = &expiry

		if user.SubscriptionStatus == model.SubscriptionActive && !user.SubscriptionExpiry.After(timezone.Now()) {
			r.Subscription.Status = model.SubscriptionExpired
		}
	}
}

type ActivateSubscription struct {
	Plan      string
	PaymentID string
	Expiry    time.Time
}

// ToUpdateMap builds the column set written when a subscription payment is verified.
func (a ActivateSubscription) ToUpdateMap(modifiedBy string) map[string]any {
	return map[string]any{
		model.FieldSubscriptionStatus:    model.SubscriptionActive,
		model.FieldSubscriptionPlan:      a.Plan,
		model.FieldSubscriptionPaymentID: a.PaymentID,
		model.FieldSubscriptionExpiry:    a.Expiry,
		constant.FieldModifiedAt:         timezone.Now(),
		constant.FieldModifiedBy:         modifiedBy,
	}
}
