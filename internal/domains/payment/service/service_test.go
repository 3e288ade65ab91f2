package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "rentopia/infras/otel/mocks"
	"rentopia/infras/payment"
	paymentMocks "rentopia/infras/payment/mocks"
	bookingMocks "rentopia/internal/domains/booking/mocks"
	bookingModel "rentopia/internal/domains/booking/model"
	"rentopia/internal/domains/payment/model/dto"
	"rentopia/internal/domains/payment/service"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	"rentopia/shared/failure"
)

const bookingID = "5b7f3c1e-2a9d-4c1b-9f3e-1a2b3c4d5e6f"

func withUser(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestPaymentService_CreateOrder(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.CreateOrderRequest
		setup    func(bookings *bookingMocks.MockBooking, gateway *paymentMocks.MockGateway)
		wantCode int
	}{
		{
			name: "plain amount",
			ctx:  context.Background(),
			req:  dto.CreateOrderRequest{Amount: 2500},
			setup: func(_ *bookingMocks.MockBooking, gateway *paymentMocks.MockGateway) {
				gateway.EXPECT().CreateOrder(gomock.Any(), int64(250000), gomock.Any(), gomock.Nil()).
					Return(payment.Order{ID: "order_1", Amount: 250000, Currency: "INR"}, nil)
				gateway.EXPECT().KeyID().Return("rzp_test_key")
			},
		},
		{
			name:     "neither booking nor amount",
			ctx:      context.Background(),
			req:      dto.CreateOrderRequest{},
			setup:    func(_ *bookingMocks.MockBooking, _ *paymentMocks.MockGateway) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking order is attached to the pending booking",
			ctx:  withUser("guest-1"),
			req:  dto.CreateOrderRequest{BookingID: bookingID},
			setup: func(bookings *bookingMocks.MockBooking, gateway *paymentMocks.MockGateway) {
				bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{
					ID: bookingID, UserID: "guest-1", Price: 2000, Status: bookingModel.StatusPendingPayment,
				}, nil)
				gateway.EXPECT().CreateOrder(gomock.Any(), int64(200000), "bk_5b7f3c1e2a9d4c1b9f3e1a2b3c4d5e6f", gomock.Any()).
					Return(payment.Order{ID: "order_2", Amount: 200000, Currency: "INR"}, nil)
				gateway.EXPECT().KeyID().Return("rzp_test_key")
				bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, "order_2", fields[bookingModel.FieldPaymentOrderID])

						where, _ := filter.GetWhereClause()
						assert.Contains(t, where, "bookings.status = :status")

						return nil
					})
			},
		},
		{
			name: "someone else's booking",
			ctx:  withUser("guest-2"),
			req:  dto.CreateOrderRequest{BookingID: bookingID},
			setup: func(bookings *bookingMocks.MockBooking, _ *paymentMocks.MockGateway) {
				bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{
					ID: bookingID, UserID: "guest-1", Status: bookingModel.StatusPendingPayment,
				}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "confirmed booking cannot be paid again",
			ctx:  withUser("guest-1"),
			req:  dto.CreateOrderRequest{BookingID: bookingID},
			setup: func(bookings *bookingMocks.MockBooking, _ *paymentMocks.MockGateway) {
				bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{
					ID: bookingID, UserID: "guest-1", Status: bookingModel.StatusConfirmed,
				}, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "gateway failure",
			ctx:  context.Background(),
			req:  dto.CreateOrderRequest{Amount: 10},
			setup: func(_ *bookingMocks.MockBooking, gateway *paymentMocks.MockGateway) {
				gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(payment.Order{}, payment.ErrGateway)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			bookings := bookingMocks.NewMockBooking(ctrl)
			gateway := paymentMocks.NewMockGateway(ctrl)
			tt.setup(bookings, gateway)

			svc := service.New(bookings, gateway, otelMocks.NewOtel())

			res, err := svc.CreateOrder(tt.ctx, tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.Order.ID)
			assert.Equal(t, "rzp_test_key", res.Key)
		})
	}
}

func TestPaymentService_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)

	gateway := paymentMocks.NewMockGateway(ctrl)
	svc := service.New(bookingMocks.NewMockBooking(ctrl), gateway, otelMocks.NewOtel())

	gateway.EXPECT().VerifySignature("order_1", "pay_1", "good").Return(true)
	gateway.EXPECT().VerifySignature("order_1", "pay_1", "bad").Return(false)

	assert.NoError(t, svc.Verify(context.Background(), dto.SignedPayment{OrderID: "order_1", PaymentID: "pay_1", Signature: "good"}))

	err := svc.Verify(context.Background(), dto.SignedPayment{OrderID: "order_1", PaymentID: "pay_1", Signature: "bad"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, service.ErrSignatureInvalid, err.Error())
}
