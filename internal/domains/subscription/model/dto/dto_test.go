package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentopia/infras/payment"
	"rentopia/internal/domains/subscription/model/dto"
)

func TestReceipt(t *testing.T) {
	t.Parallel()

	now := time.Unix(1735689600, 0)

	tests := []struct {
		name   string
		userID string
		want   string
	}{
		{name: "uuid is shortened", userID: "5f0c8a52-9d2e-4d7b-a0f1-3b6c1e2d4f5a", want: "rcpt_5f0c8a529d2e4d7b_1735689600"},
		{name: "short id kept", userID: "u1", want: "rcpt_u1_1735689600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := dto.Receipt(tt.userID, now)

			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 40)
		})
	}
}

func TestOrderResponse_FromOrder(t *testing.T) {
	t.Parallel()

	var res dto.OrderResponse
	res.FromOrder(payment.Order{ID: "order_1", Amount: 50000, Currency: "INR", Status: "created"}, "rzp_test_key")

	assert.Equal(t, dto.OrderResponse{ID: "order_1", Amount: 50000, Currency: "INR", KeyID: "rzp_test_key"}, res)
}
