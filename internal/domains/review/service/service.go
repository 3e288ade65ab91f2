package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Review=MockReviewService

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"rentopia/infras/otel"
	bookingModel "rentopia/internal/domains/booking/model"
	bookingRepo "rentopia/internal/domains/booking/repository"
	placeModel "rentopia/internal/domains/place/model"
	placeRepo "rentopia/internal/domains/place/repository"
	"rentopia/internal/domains/review/model"
	"rentopia/internal/domains/review/model/dto"
	"rentopia/internal/domains/review/repository"
	"rentopia/shared"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Review interface {
	CanReview(ctx context.Context, bookingID string) (dto.Eligibility, error)
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	GetByPlace(ctx context.Context, placeID string) ([]dto.ReviewResponse, error)
	OwnerFeedback(ctx context.Context) (dto.OwnerFeedbackResponse, error)
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingRepo.Booking
	placeRepo   placeRepo.Place
	otel        otel.Otel
}

func New(repo repository.Review, bookingRepo bookingRepo.Booking, placeRepo placeRepo.Place, otel otel.Otel) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		placeRepo:   placeRepo,
		otel:        otel,
	}
}

// ineligible pairs a reason with the status Create answers it with.
type ineligible struct {
	reason string
	code   int
	review *dto.ReviewResponse
}

func (s *serviceImpl) CanReview(ctx context.Context, bookingID string) (res dto.Eligibility, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CanReview")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	_, denied, err := s.eligibility(ctx, userID, bookingID)
	if err != nil {
		return res, err
	}

	if denied != nil {
		return dto.Eligibility{Reason: denied.reason, Review: denied.review}, nil
	}

	return dto.Eligibility{CanReview: true}, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	booking, denied, err := s.eligibility(ctx, userID, req.Booking)
	if err != nil {
		return res, err
	}

	if denied != nil {
		return res, &failure.Failure{Code: denied.code, Message: denied.reason}
	}

	review := req.ToModel(userID, booking.PlaceID, timezone.Now())

	if err = s.repo.Insert(ctx, review); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return res, failure.Unprocessable(dto.ReasonAlreadyReviewed) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking_id", req.Booking).Msg("failed to insert review")

		return res, fmt.Errorf("failed to insert review: %w", err)
	}

	res.FromModel(review)

	return res, nil
}

// eligibility runs the checks in order and stops at the first one that fails.
func (s *serviceImpl) eligibility(ctx context.Context, userID, bookingID string) (bookingModel.Booking, *ineligible, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, nil, fmt.Errorf("failed to get booking: %w", err)
	}

	switch {
	case booking.ID == constant.Empty:
		return booking, &ineligible{reason: dto.ReasonBookingNotFound, code: http.StatusNotFound}, nil
	case booking.UserID != userID:
		return booking, &ineligible{reason: dto.ReasonNotYourBooking, code: http.StatusForbidden}, nil
	case booking.CheckOut.After(timezone.Today()):
		return booking, &ineligible{reason: dto.ReasonCheckoutNotPassed, code: http.StatusUnprocessableEntity}, nil
	case booking.Status != bookingModel.StatusConfirmed:
		return booking, &ineligible{reason: dto.ReasonBookingNotConfirmed, code: http.StatusUnprocessableEntity}, nil
	}

	existing, err := s.repo.Get(ctx, shared.FilterByID(booking.ID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return booking, nil, fmt.Errorf("failed to get review: %w", err)
	}

	if existing.ID != constant.Empty {
		var review dto.ReviewResponse
		review.FromModel(existing)

		return booking, &ineligible{reason: dto.ReasonAlreadyReviewed, code: http.StatusUnprocessableEntity, review: &review}, nil
	}

	return booking, nil, nil
}

func (s *serviceImpl) GetByPlace(ctx context.Context, placeID string) (res []dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByPlace")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reviews, err := s.repo.GetAllWithUser(ctx, newestFirst(), shared.FilterByID(placeID, model.FieldPlaceID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	return dto.FromModelsWithUser(reviews), nil
}

func (s *serviceImpl) OwnerFeedback(ctx context.Context) (res dto.OwnerFeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OwnerFeedback")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	places, err := s.placeRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  placeModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, shared.FilterByID(userID, placeModel.FieldOwnerID, placeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner places")

		return res, fmt.Errorf("failed to get owner places: %w", err)
	}

	if len(places) == 0 {
		return dto.OwnerFeedbackResponse{Places: []dto.PlaceFeedback{}}, nil
	}

	ids := make([]string, len(places))
	for i, p := range places {
		ids[i] = p.ID
	}

	reviews, err := s.repo.GetAllWithUser(ctx, newestFirst(), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPlaceID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner reviews")

		return res, fmt.Errorf("failed to get owner reviews: %w", err)
	}

	res.FromModels(places, reviews)

	return res, nil
}

func newestFirst() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}
}
