package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rentopia/infras/otel"
	"rentopia/infras/postgres"
	"rentopia/internal/domains/place/model"
	gDto "rentopia/shared/dto"
	gRepo "rentopia/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Place interface {
	Insert(ctx context.Context, model model.Place) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Place, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Place, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Place, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Place]
}

func New(db *postgres.Connection, otel otel.Otel) Place {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Place](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
