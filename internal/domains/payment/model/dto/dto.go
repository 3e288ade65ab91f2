package dto

import (
	"math"
	"rentopia/infras/payment"
)

const paisePerRupee = 100

type CreateOrderRequest struct {
	BookingID string  `json:"booking_id" validate:"omitempty,uuid"`
	Amount    float64 `json:"amount"     validate:"omitempty,gt=0"`
}

// ToPaise converts a rupee amount to the gateway's minor unit.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * paisePerRupee))
}

type CreateOrderResponse struct {
	Order payment.Order `json:"order"`
	Key   string        `json:"key"`
}

type SignedPayment struct {
	OrderID   string `json:"razorpay_order_id"   validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature"  validate:"required"`
}

// VerifyRequest accepts the checkout widget payload either flat or nested under "response".
type VerifyRequest struct {
	Response *SignedPayment `json:"response"`
	SignedPayment
}

func (r *VerifyRequest) Payment() SignedPayment {
	if r.Response != nil {
		return *r.Response
	}

	return r.SignedPayment
}
