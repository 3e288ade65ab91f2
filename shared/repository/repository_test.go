package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	otelMocks "rentopia/infras/otel/mocks"
	"rentopia/shared/dto"
	"rentopia/shared/model"
)

type stay struct {
	ID      string `db:"id"`
	PlaceID string `db:"place_id"`
	Skipped string `db:"-"`
	model.Metadata
}

type stayWithPlace struct {
	stay
	PlaceTitle string `db:"place_title" table:"places" column:"title"`
}

func (stayWithPlace) GetJoinQuery() string {
	return "JOIN places ON places.id = bookings.place_id"
}

func TestNewRepository_Columns(t *testing.T) {
	repo := NewRepository[stay]("booking", "bookings", "id", nil, otelMocks.NewOtel())

	assert.Equal(t,
		[]string{"id", "place_id", "created_at", "modified_at", "created_by", "modified_by"},
		repo.insertColumns,
	)
	assert.Empty(t, repo.join)
	assert.Equal(t, "INSERT INTO bookings (id, place_id, created_at, modified_at, created_by, modified_by) "+
		"VALUES (:id, :place_id, :created_at, :modified_at, :created_by, :modified_by)", repo.insertQuery())
	assert.Equal(t, "bookings.id, bookings.place_id", repo.selectList("id", "place_id"))
}

func TestNewRepository_Join(t *testing.T) {
	repo := NewRepository[stayWithPlace]("booking", "bookings", "id", nil, otelMocks.NewOtel())

	assert.Equal(t, "JOIN places ON places.id = bookings.place_id", repo.join)
	assert.NotContains(t, repo.insertColumns, "place_title")
	assert.Contains(t, repo.selectList(), "places.title AS place_title")
}

func TestUpdateQuery_SortedColumns(t *testing.T) {
	query := updateQuery("bookings", map[string]any{"status": "confirmed", "modified_at": 1, "modified_by": "u"}, "WHERE (bookings.id = :id)")

	assert.Equal(t, "UPDATE bookings SET modified_at = :modified_at, modified_by = :modified_by, status = :status WHERE (bookings.id = :id)", query)
}

func TestWhereClause(t *testing.T) {
	where, args := whereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.NotNil(t, args)

	where, args = whereClause(dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: "b1", Table: "bookings"},
	}})
	assert.Equal(t, "WHERE (bookings.id = :id)", where)
	assert.Equal(t, "b1", args["id"])
}
