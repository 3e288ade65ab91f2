package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentopia/config"
	"rentopia/infras/otel/mocks"
	userMocks "rentopia/internal/domains/user/mocks"
	"rentopia/internal/domains/user/model"
	"rentopia/internal/domains/user/model/dto"
	"rentopia/internal/domains/user/service"
	cacheMocks "rentopia/shared/cache/mocks"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"
)

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	expiry := timezone.Now().Add(24 * time.Hour)
	plan := "annual_listing"

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
		check     func(t *testing.T, res dto.UserResponse)
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "user:get:u1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.UserResponse)
						res.ID = "u1"
						res.Name = "Cached"

						return nil
					})
			},
			check: func(t *testing.T, res dto.UserResponse) {
				assert.Equal(t, "Cached", res.Name)
			},
		},
		{
			name: "loads from repository with active subscription",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{
					ID:                 "u1",
					Name:               "Asha",
					Email:              "asha@example.com",
					Password:           "hash",
					SubscriptionStatus: model.SubscriptionActive,
					SubscriptionPlan:   &plan,
					SubscriptionExpiry: &expiry,
				}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			check: func(t *testing.T, res dto.UserResponse) {
				assert.Equal(t, "Asha", res.Name)
				assert.Equal(t, model.SubscriptionActive, res.Subscription.Status)
				assert.Equal(t, &plan, res.Subscription.Plan)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "u1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestUserService_ActivateSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	req := dto.ActivateSubscription{
		Plan:      "annual_listing",
		PaymentID: "pay_1",
		Expiry:    timezone.Now().AddDate(0, 0, 365),
	}

	t.Run("writes subscription columns", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.SubscriptionActive, fields[model.FieldSubscriptionStatus])
				assert.Equal(t, "annual_listing", fields[model.FieldSubscriptionPlan])
				assert.Equal(t, "pay_1", fields[model.FieldSubscriptionPaymentID])
				assert.Equal(t, req.Expiry, fields[model.FieldSubscriptionExpiry])

				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), "user:get:u1").Return(nil).AnyTimes()

		err := svc.ActivateSubscription(context.Background(), "u1", req)
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.ActivateSubscription(context.Background(), "ghost", req)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
