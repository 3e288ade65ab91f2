package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Place=MockPlaceService

import (
	"context"
	"errors"
	"fmt"
	"rentopia/config"
	"rentopia/infras/otel"
	"rentopia/internal/domains/place/model"
	"rentopia/internal/domains/place/model/dto"
	"rentopia/internal/domains/place/repository"
	userModel "rentopia/internal/domains/user/model"
	userRepo "rentopia/internal/domains/user/repository"
	"rentopia/shared"
	"rentopia/shared/cache"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetPlace      = "place:get"
	cacheGetAllPlace   = "place:gets"
	cacheGetOwnerPlace = "place:owner"
)

const (
	errSubscriptionRequired = "Subscription required"
	errPlaceNotFound        = "Place not found"
	errNotOwner             = "Unauthorized: Owner mismatch"
)

var sortablePlaceFields = map[string]bool{
	model.FieldPrice:        true,
	model.FieldMaxGuests:    true,
	model.FieldTitle:        true,
	constant.FieldCreatedAt: true,
}

type Place interface {
	Create(ctx context.Context, req dto.PlaceRequest) (dto.PlaceResponse, error)
	Update(ctx context.Context, req dto.PlaceRequest) error
	GetAll(ctx context.Context, query dto.ListQuery) (dto.GetPlacesResponse, error)
	Get(ctx context.Context, id string) (dto.PlaceResponse, error)
	GetByOwner(ctx context.Context) ([]dto.PlaceResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Place
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Place, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Place {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.PlaceRequest) (res dto.PlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.CanList(timezone.Now()) {
		return res, failure.Forbidden(errSubscriptionRequired) // nolint:wrapcheck
	}

	place := req.ToModel(userID)

	if err = s.repo.Insert(ctx, place); err != nil {
		log.Error().Err(err).Msg("failed to create place")

		return res, fmt.Errorf("failed to create place: %w", err)
	}

	s.invalidate(ctx, place.ID, userID)

	res.FromModel(place)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.PlaceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.ID == constant.Empty {
		return failure.BadRequestFromString("id is required") // nolint:wrapcheck
	}

	place, err := s.ownedPlace(ctx, req.ID)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(place.ID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, req.ToUpdateMap(place.OwnerID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update place")

		return fmt.Errorf("failed to update place: %w", err)
	}

	s.invalidate(ctx, place.ID, place.OwnerID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.ListQuery) (res dto.GetPlacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params := query.QueryParams
	if !sortablePlaceFields[params.SortBy] {
		params.SortBy = constant.FieldCreatedAt
	}

	if params.SortDir == constant.Empty {
		params.SortDir = constant.DefaultValueSortDir
	}

	params.SortBy = model.TableName + "." + params.SortBy

	filter := query.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPlace, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for places")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count places")

		return res, fmt.Errorf("failed to count places: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get places")

		return res, fmt.Errorf("failed to get places: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save places to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetPlace, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for place")

		return res, nil
	}

	place, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get place")

		return res, fmt.Errorf("failed to get place: %w", err)
	}

	if place.ID == constant.Empty {
		return res, failure.NotFound(errPlaceNotFound) // nolint:wrapcheck
	}

	res.FromModel(place)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save place to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context) (res []dto.PlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByOwner")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetOwnerPlace, userID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	filter := shared.FilterByID(userID, model.FieldOwnerID, model.TableName)
	params := gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner places")

		return res, fmt.Errorf("failed to get owner places: %w", err)
	}

	res = make([]dto.PlaceResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner places to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	place, err := s.ownedPlace(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(place.ID, model.FieldID, model.TableName)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			return failure.Unprocessable("Place has bookings and cannot be deleted") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete place")

		return fmt.Errorf("failed to delete place: %w", err)
	}

	s.invalidate(ctx, place.ID, place.OwnerID)

	return nil
}

// ownedPlace loads a place and checks it belongs to the caller.
func (s *serviceImpl) ownedPlace(ctx context.Context, id string) (model.Place, error) {
	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return model.Place{}, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	place, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get place")

		return place, fmt.Errorf("failed to get place: %w", err)
	}

	if place.ID == constant.Empty {
		return place, failure.NotFound(errPlaceNotFound) // nolint:wrapcheck
	}

	if place.OwnerID != userID {
		return place, failure.Forbidden(errNotOwner) // nolint:wrapcheck
	}

	return place, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, placeID, ownerID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPlace, placeID)); err != nil {
			log.Error().Err(err).Msg("failed to delete place from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOwnerPlace, ownerID)); err != nil {
			log.Error().Err(err).Msg("failed to delete owner places from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPlace)
	}()
}
