package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentopia/shared/constant"
	"rentopia/shared/dto"
	"rentopia/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	modified := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{CreatedAt: created, ModifiedAt: modified, CreatedBy: "host-1"})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.UpdatedAt)

	parsedCreated, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsedCreated.Equal(created))
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  dto.QueryParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "explicit values",
			query: "page=3&limit=25&sort_by=price&sort_dir=asc",
			want:  dto.QueryParams{Page: 3, Limit: 25, SortBy: "price", SortDir: dto.SortDirAsc},
		},
		{
			name:  "invalid numbers fall back",
			query: "page=-2&limit=abc",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "limit is capped",
			query: "limit=5000",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:  "unknown sort direction is dropped",
			query: "sort_by=title&sort_dir=sideways",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/places?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, dto.QueryParams{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 0, Limit: 20}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 2}.Offset())
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	filter := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "place_id", Operator: dto.FilterOperatorEq, Value: "p1", Table: "bookings"},
			dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"confirmed", "pending_payment"}},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "title", ArgName: "q_title", Operator: dto.FilterOperatorLike, Value: "loft"},
					dto.Filter{Field: "price", Operator: dto.FilterOperatorLessEq, Value: 2500},
				},
			},
			dto.Filter{Field: "ignored", Operator: "unknown"},
		},
	}

	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(bookings.place_id = :place_id AND status IN (:status_0, :status_1) AND (LOWER(title) LIKE LOWER(:q_title) OR price <= :price))",
		where,
	)
	assert.Equal(t, "p1", args["place_id"])
	assert.Equal(t, "pending_payment", args["status_1"])
	assert.Equal(t, "%loft%", args["q_title"])
	assert.Equal(t, 2500, args["price"])
}

func TestFilter_InEdgeCases(t *testing.T) {
	empty := dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}}
	where, _ := empty.GetWhereClause()
	assert.Equal(t, "FALSE", where)

	scalar := dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: "b1"}
	where, args := scalar.GetWhereClause()
	assert.Equal(t, "id = :id", where)
	assert.Equal(t, "b1", args["id"])
}

func TestFilterGroup_Empty(t *testing.T) {
	where, args := (&dto.FilterGroup{}).GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
