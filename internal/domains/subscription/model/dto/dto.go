package dto

import (
	"fmt"
	"rentopia/infras/payment"
	"rentopia/shared/constant"
	"strings"
	"time"
)

const (
	receiptPrefix  = "rcpt_"
	receiptUserLen = 16
)

type OrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

func (r *OrderResponse) FromOrder(order payment.Order, keyID string) {
	r.ID = order.ID
	r.Amount = order.Amount
	r.Currency = order.Currency
	r.KeyID = keyID
}

// Receipt builds rcpt_<user>_<unix>. The user part is shortened so the receipt stays within the
// gateway's 40 character limit.
func Receipt(userID string, now time.Time) string {
	user := strings.ReplaceAll(userID, "-", constant.Empty)
	if len(user) > receiptUserLen {
		user = user[:receiptUserLen]
	}

	return fmt.Sprintf("%s%s_%d", receiptPrefix, user, now.Unix())
}

type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id"   validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature"  validate:"required"`
}

type VerifyResponse struct {
	Message string `json:"message"`
	Plan    string `json:"plan"`
	Expiry  string `json:"expiry"`
}
