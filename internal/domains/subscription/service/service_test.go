package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentopia/config"
	otelMocks "rentopia/infras/otel/mocks"
	"rentopia/infras/payment"
	paymentMocks "rentopia/infras/payment/mocks"
	notificationMocks "rentopia/internal/domains/notification/mocks"
	notificationModel "rentopia/internal/domains/notification/model"
	"rentopia/internal/domains/subscription/model/dto"
	"rentopia/internal/domains/subscription/service"
	userMocks "rentopia/internal/domains/user/mocks"
	userDto "rentopia/internal/domains/user/model/dto"
	"rentopia/shared/constant"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"
)

const hostID = "5f0c8a52-9d2e-4d7b-a0f1-3b6c1e2d4f5a"

type fixture struct {
	gateway   *paymentMocks.MockGateway
	users     *userMocks.MockUserService
	publisher *notificationMocks.MockPublisher
	svc       service.Subscription
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Subscription.Plan = "annual_listing"
	cfg.Subscription.PlanLabel = "Annual Listing Plan"
	cfg.Subscription.AmountPaise = 50000
	cfg.Subscription.DurationDays = 365

	f := &fixture{
		gateway:   paymentMocks.NewMockGateway(ctrl),
		users:     userMocks.NewMockUserService(ctrl),
		publisher: notificationMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.gateway, f.users, f.publisher, cfg, otelMocks.NewOtel())

	return f
}

func withUser(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestSubscriptionService_CreateOrder(t *testing.T) {
	t.Parallel()

	t.Run("plan amount and receipt", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		f.gateway.EXPECT().CreateOrder(gomock.Any(), int64(50000), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, amount int64, receipt string, notes map[string]string) (payment.Order, error) {
				assert.Regexp(t, `^rcpt_5f0c8a529d2e4d7b_\d+$`, receipt)
				assert.Equal(t, "annual_listing", notes["plan"])

				return payment.Order{ID: "order_sub", Amount: amount, Currency: "INR"}, nil
			})
		f.gateway.EXPECT().KeyID().Return("rzp_test_key")

		res, err := f.svc.CreateOrder(withUser(hostID))

		require.NoError(t, err)
		assert.Equal(t, dto.OrderResponse{ID: "order_sub", Amount: 50000, Currency: "INR", KeyID: "rzp_test_key"}, res)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.CreateOrder(context.Background())

		var fail *failure.Failure
		require.ErrorAs(t, err, &fail)
		assert.Equal(t, http.StatusUnauthorized, fail.Code)
	})

	t.Run("gateway error", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		f.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(payment.Order{}, payment.ErrGateway)

		_, err := f.svc.CreateOrder(withUser(hostID))

		assert.ErrorIs(t, err, payment.ErrGateway)
	})
}

func TestSubscriptionService_Verify(t *testing.T) {
	t.Parallel()

	req := dto.VerifyRequest{OrderID: "order_sub", PaymentID: "pay_1", Signature: "sig"}

	t.Run("activates and publishes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		before := timezone.Now()

		f.gateway.EXPECT().VerifySignature("order_sub", "pay_1", "sig").Return(true)
		f.users.EXPECT().ActivateSubscription(gomock.Any(), hostID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, a userDto.ActivateSubscription) error {
				assert.Equal(t, "annual_listing", a.Plan)
				assert.Equal(t, "pay_1", a.PaymentID)
				assert.WithinDuration(t, before.AddDate(0, 0, 365), a.Expiry, time.Minute)

				return nil
			})
		f.publisher.EXPECT().SubscriptionActivated(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, e notificationModel.SubscriptionActivated) {
				assert.Equal(t, hostID, e.UserID)
				assert.Equal(t, "Annual Listing Plan", e.PlanLabel)
				assert.Equal(t, int64(50000), e.AmountPaise)
			})

		res, err := f.svc.Verify(withUser(hostID), req)

		require.NoError(t, err)
		assert.Equal(t, "annual_listing", res.Plan)
		assert.NotEmpty(t, res.Expiry)
	})

	t.Run("bad signature changes nothing", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		f.gateway.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any()).Return(false)

		_, err := f.svc.Verify(withUser(hostID), req)

		var fail *failure.Failure
		require.ErrorAs(t, err, &fail)
		assert.Equal(t, http.StatusBadRequest, fail.Code)
		assert.Equal(t, "Signature Invalid", fail.Message)
	})

	t.Run("activation error is not published", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		f.gateway.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		f.users.EXPECT().ActivateSubscription(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Verify(withUser(hostID), req)

		require.Error(t, err)
		assert.False(t, failure.IsFailure(err))
	})
}
