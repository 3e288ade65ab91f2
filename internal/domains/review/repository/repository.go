package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rentopia/infras/otel"
	"rentopia/infras/postgres"
	"rentopia/internal/domains/review/model"
	gDto "rentopia/shared/dto"
	gRepo "rentopia/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAllWithUser(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ReviewWithUser, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	withUser gRepo.Repository[model.ReviewWithUser]
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		withUser:   gRepo.NewRepository[model.ReviewWithUser](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetAllWithUser(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ReviewWithUser, error) {
	return r.withUser.GetAll(ctx, params, filter) //nolint:wrapcheck
}
