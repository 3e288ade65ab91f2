package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rentopia/infras/otel"
	"rentopia/infras/postgres"
	"rentopia/internal/domains/booking/model"
	gDto "rentopia/shared/dto"
	gRepo "rentopia/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	WithTx(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	CountTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Booking, error)
	GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithPlace, error)
	GetWithPlace(ctx context.Context, filter gDto.FilterGroup) (model.BookingWithPlace, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	withPlace gRepo.Repository[model.BookingWithPlace]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		withPlace:  gRepo.NewRepository[model.BookingWithPlace](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithPlace, error) {
	return r.withPlace.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetWithPlace(ctx context.Context, filter gDto.FilterGroup) (model.BookingWithPlace, error) {
	return r.withPlace.Get(ctx, filter) //nolint:wrapcheck
}
