package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentopia/shared"
	cacheMocks "rentopia/shared/cache/mocks"
	"rentopia/shared/constant"
	"rentopia/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 95, limit: 20, want: 5},
		{total: 5, limit: 0, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestTransformFields(t *testing.T) {
	type placeUpdate struct {
		Title     string   `db:"title"`
		Price     float64  `db:"price"`
		MaxGuests int      `db:"max_guests"`
		Perks     []string `db:"perks"`
		Internal  string   `db:"-"`
		Untagged  string
	}

	t.Run("keeps non zero tagged fields", func(t *testing.T) {
		result := shared.TransformFields(placeUpdate{
			Title:    "Lake cabin",
			Price:    2500,
			Perks:    []string{"wifi"},
			Internal: "skip",
			Untagged: "skip",
		}, "host-1")

		assert.Equal(t, "Lake cabin", result["title"])
		assert.Equal(t, 2500.0, result["price"])
		assert.Equal(t, []string{"wifi"}, result["perks"])
		assert.NotContains(t, result, "max_guests")
		assert.NotContains(t, result, "-")
		assert.Len(t, result, 5)

		assert.Equal(t, "host-1", result[constant.FieldModifiedBy])
		assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	})

	t.Run("accepts a pointer", func(t *testing.T) {
		result := shared.TransformFields(&placeUpdate{MaxGuests: 4}, "host-2")

		assert.Equal(t, 4, result["max_guests"])
		assert.Equal(t, "host-2", result[constant.FieldModifiedBy])
	})

	t.Run("zero struct only stamps metadata", func(t *testing.T) {
		result := shared.TransformFields(placeUpdate{}, "host-3")

		assert.Len(t, result, 2)
	})

	t.Run("pointer fields count when set", func(t *testing.T) {
		type bookingUpdate struct {
			CancelledAt *time.Time `db:"cancelled_at"`
			OrderID     *string    `db:"payment_order_id"`
		}

		now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		result := shared.TransformFields(bookingUpdate{CancelledAt: &now}, "guest-1")

		assert.Equal(t, &now, result["cancelled_at"])
		assert.NotContains(t, result, "payment_order_id")
	})
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-42", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, "b-42", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "place:get:abc", shared.BuildCacheKey("place:get", "abc"))
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "127.0.0.1", "curl"))
	assert.Equal(t, "auth", shared.BuildCacheKey("auth"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("123", "id", "places")

	first := shared.BuildCacheKeyWithQuery("place:gets", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("place:gets", params, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("place:gets", dto.QueryParams{Page: 2, Limit: 10}, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("place:gets", params, shared.FilterByID("124", "id", "places")))
	assert.True(t, strings.HasPrefix(first, "place:gets:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), "place:*").Return(nil)
	shared.InvalidateCaches(context.Background(), cache, "place:")

	cache.EXPECT().Clear(gomock.Any(), "place:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), cache, "place:")
}

func TestUserFromContext(t *testing.T) {
	userID, ok := shared.UserFromContext(context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1"))
	assert.True(t, ok)
	assert.Equal(t, "u-1", userID)

	_, ok = shared.UserFromContext(context.WithValue(context.Background(), constant.ContextKeyUserID, ""))
	assert.False(t, ok)

	_, ok = shared.UserFromContext(context.Background())
	assert.False(t, ok)
}

func TestRound(t *testing.T) {
	assert.InDelta(t, 4.3, shared.Round(4.25, 1), 1e-9)
	assert.InDelta(t, 4.0, shared.Round(4.0, 1), 1e-9)
	assert.InDelta(t, 3.3, shared.Round(3.3333, 1), 1e-9)
	assert.InDelta(t, 0.0, shared.Round(0, 1), 1e-9)
}
