package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentopia/config"
	otelMocks "rentopia/infras/otel/mocks"
	placeMocks "rentopia/internal/domains/place/mocks"
	"rentopia/internal/domains/place/model"
	"rentopia/internal/domains/place/model/dto"
	"rentopia/internal/domains/place/service"
	userMocks "rentopia/internal/domains/user/mocks"
	userModel "rentopia/internal/domains/user/model"
	cacheMocks "rentopia/shared/cache/mocks"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"
)

type fixture struct {
	repo     *placeMocks.MockPlace
	userRepo *userMocks.MockUser
	cache    *cacheMocks.MockRedisCache
	svc      service.Place
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := &fixture{
		repo:     placeMocks.NewMockPlace(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.userRepo, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func withUser(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func subscribedUser(id string, expiry time.Time) userModel.User {
	return userModel.User{
		ID:                 id,
		SubscriptionStatus: userModel.SubscriptionActive,
		SubscriptionExpiry: &expiry,
	}
}

func validRequest() dto.PlaceRequest {
	return dto.PlaceRequest{
		Title:        "Lake view cottage",
		Address:      "12 Shore Road, Nainital",
		AddedPhotos:  []string{"https://cdn.example.com/a.jpg"},
		Perks:        []string{"wifi", "parking"},
		MaxGuests:    4,
		Price:        2500,
		PropertyType: "Villa",
	}
}

func TestPlaceService_Create(t *testing.T) {
	now := timezone.Now()

	tests := []struct {
		name     string
		ctx      context.Context
		setup    func(f *fixture)
		wantCode int
	}{
		{
			name: "active subscription creates place",
			ctx:  withUser("host-1"),
			setup: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(subscribedUser("host-1", now.Add(24*time.Hour)), nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p model.Place) error {
					assert.Equal(t, "host-1", p.OwnerID)
					assert.NotEmpty(t, p.ID)

					return nil
				})
			},
		},
		{
			name: "expired subscription is rejected",
			ctx:  withUser("host-1"),
			setup: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(subscribedUser("host-1", now.Add(-time.Hour)), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "no subscription is rejected",
			ctx:  withUser("host-1"),
			setup: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "host-1", SubscriptionStatus: userModel.SubscriptionNone}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "anonymous caller",
			ctx:      context.Background(),
			setup:    func(_ *fixture) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "insert failure",
			ctx:  withUser("host-1"),
			setup: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(subscribedUser("host-1", now.Add(time.Hour)), nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(tt.ctx, validRequest())

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "host-1", res.Owner)
			assert.Equal(t, "Lake view cottage", res.Title)
		})
	}
}

func TestPlaceService_Update(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.PlaceRequest
		setup    func(f *fixture)
		wantCode int
	}{
		{
			name: "owner updates place",
			req:  func() dto.PlaceRequest { r := validRequest(); r.ID = "p1"; return r }(),
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{ID: "p1", OwnerID: "host-1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Lake view cottage", fields[model.FieldTitle])
						assert.NotContains(t, fields, model.FieldOwnerID)

						return nil
					})
			},
		},
		{
			name: "other user cannot update",
			req:  func() dto.PlaceRequest { r := validRequest(); r.ID = "p1"; return r }(),
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{ID: "p1", OwnerID: "someone-else"}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown place",
			req:  func() dto.PlaceRequest { r := validRequest(); r.ID = "p404"; return r }(),
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "missing id",
			req:      validRequest(),
			setup:    func(_ *fixture) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Update(withUser("host-1"), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPlaceService_GetAll(t *testing.T) {
	f := newFixture(t)

	photos := pq.StringArray{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Place, error) {
			assert.Equal(t, "places.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Place{{ID: "p1", Photos: photos}}, nil
		})

	query := dto.ListQuery{QueryParams: gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password; DROP TABLE"}}

	res, err := f.svc.GetAll(context.Background(), query)

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Places, 1)
	assert.Len(t, res.Places[0].Photos, model.ListingPhotoLimit)
}

func TestPlaceService_GetAll_Empty(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.svc.GetAll(context.Background(), dto.ListQuery{QueryParams: gDto.QueryParams{Page: 1, Limit: 10}})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Empty(t, res.Places)
	assert.Equal(t, 1, res.TotalPage)
}

func TestPlaceService_Get(t *testing.T) {
	t.Run("returns every photo", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "place:get:p1", gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{
			ID:     "p1",
			Photos: pq.StringArray{"1.jpg", "2.jpg", "3.jpg", "4.jpg"},
		}, nil)

		res, err := f.svc.Get(context.Background(), "p1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.Photos, 4)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{}, nil)

		_, err := f.svc.Get(context.Background(), "p404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPlaceService_GetByOwner(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "place:owner:host-1", gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Place{{ID: "p1", OwnerID: "host-1"}, {ID: "p2", OwnerID: "host-1"}}, nil)

	res, err := f.svc.GetByOwner(withUser("host-1"))

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestPlaceService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *fixture)
		wantCode int
	}{
		{
			name: "owner deletes place",
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{ID: "p1", OwnerID: "host-1"}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "place with bookings",
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{ID: "p1", OwnerID: "host-1"}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "not the owner",
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{ID: "p1", OwnerID: "host-2"}, nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Delete(withUser("host-1"), "p1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
