package payment_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "rentopia/infras/otel/mocks"
	infraPayment "rentopia/infras/payment"
	paymentMocks "rentopia/internal/domains/payment/mocks"
	"rentopia/internal/domains/payment/model/dto"
	"rentopia/internal/domains/payment/service"
	"rentopia/internal/handlers/payment"
	"rentopia/shared/failure"
)

func newRouter(t *testing.T) (*paymentMocks.MockPayment, chi.Router) {
	t.Helper()

	svc := paymentMocks.NewMockPayment(gomock.NewController(t))
	router := chi.NewRouter()

	handler := payment.New(svc, otelMocks.NewOtel())
	handler.Router(router)

	return svc, router
}

func TestHandler_Verify(t *testing.T) {
	signed := dto.SignedPayment{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}

	tests := []struct {
		name     string
		body     string
		setup    func(svc *paymentMocks.MockPayment)
		wantCode int
		wantBody string
	}{
		{
			name: "flat payload",
			body: `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}`,
			setup: func(svc *paymentMocks.MockPayment) {
				svc.EXPECT().Verify(gomock.Any(), signed).Return(nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"message":"Signature Valid"}`,
		},
		{
			name: "payload nested under response",
			body: `{"response":{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}}`,
			setup: func(svc *paymentMocks.MockPayment) {
				svc.EXPECT().Verify(gomock.Any(), signed).Return(nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"message":"Signature Valid"}`,
		},
		{
			name: "signature mismatch",
			body: `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"forged"}`,
			setup: func(svc *paymentMocks.MockPayment) {
				svc.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(failure.BadRequestFromString(service.ErrSignatureInvalid))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Signature Invalid"}`,
		},
		{
			name:     "missing fields",
			body:     `{"razorpay_order_id":"order_1"}`,
			setup:    func(*paymentMocks.MockPayment) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_CreateOrder(t *testing.T) {
	t.Run("returns the order and key", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			CreateOrder(gomock.Any(), dto.CreateOrderRequest{Amount: 1500}).
			Return(dto.CreateOrderResponse{Order: infraPayment.Order{ID: "order_1", Amount: 150000, Currency: "INR"}, Key: "rzp_test"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/placesBooking", strings.NewReader(`{"amount":1500}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"key":"rzp_test"`)
		assert.Contains(t, rec.Body.String(), `"amount":150000`)
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		_, router := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/placesBooking", strings.NewReader(`{"amount":-5}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
