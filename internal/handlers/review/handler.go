package review

import (
	"net/http"
	"rentopia/infras/otel"
	"rentopia/internal/domains/review/model/dto"
	"rentopia/internal/domains/review/service"
	"rentopia/shared/constant"
	"rentopia/shared/validator"
	"rentopia/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/bookings/{id}/can-review", handler.CanReview)
	router.Post("/reviews", handler.CreateReview)
	router.Get("/places/{id}/reviews", handler.GetPlaceReviews)
	router.Get("/owner/feedback", handler.OwnerFeedback)
}

// CanReview reports whether the caller may review a booking.
// @Summary Review eligibility
// @Description Eligible once the stay has ended for a confirmed booking of the caller that has no review yet.
// @Tags Review
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.Eligibility
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id}/can-review [get]
// @Security BearerAuth
func (handler *Handler) CanReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CanReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.CanReview(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check review eligibility")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateReview stores a review for a finished stay.
// @Summary Create a review
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := dto.CreateReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPlaceReviews lists the reviews of a place, newest first.
// @Summary Reviews of a place
// @Tags Review
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {array} dto.ReviewResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places/{id}/reviews [get]
func (handler *Handler) GetPlaceReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaceReviews")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetByPlace(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("place_id", id).Msg("failed to get place reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// OwnerFeedback aggregates reviews over the caller's places.
// @Summary Feedback for hosts
// @Tags Review
// @Produce json
// @Success 200 {object} dto.OwnerFeedbackResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/owner/feedback [get]
// @Security BearerAuth
func (handler *Handler) OwnerFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OwnerFeedback")
	defer scope.End()

	res, err := handler.service.OwnerFeedback(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
