package dto_test

import (
	"encoding/json"
	"rentopia/internal/domains/payment/model/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPaise(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{amount: 500, want: 50000},
		{amount: 1999.99, want: 199999},
		{amount: 0.015, want: 2},
		{amount: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dto.ToPaise(tt.amount))
	}
}

func TestVerifyRequest_Payment(t *testing.T) {
	tests := []struct {
		name string
		body string
		want dto.SignedPayment
	}{
		{
			name: "nested response",
			body: `{"response":{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}}`,
			want: dto.SignedPayment{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"},
		},
		{
			name: "flat payload",
			body: `{"razorpay_order_id":"order_2","razorpay_payment_id":"pay_2","razorpay_signature":"sig2"}`,
			want: dto.SignedPayment{OrderID: "order_2", PaymentID: "pay_2", Signature: "sig2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.VerifyRequest

			assert.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Payment())
		})
	}
}
