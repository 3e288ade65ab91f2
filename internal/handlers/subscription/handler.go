package subscription

import (
	"net/http"
	"rentopia/infras/otel"
	"rentopia/internal/domains/subscription/model/dto"
	"rentopia/internal/domains/subscription/service"
	"rentopia/shared/constant"
	"rentopia/shared/validator"
	"rentopia/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Subscription
	otel    otel.Otel
}

func New(service service.Subscription, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/subscription/order", handler.CreateOrder)
	router.Post("/subscription/verify", handler.Verify)
}

// CreateOrder opens a gateway order for the host plan.
// @Summary Create a subscription order
// @Tags Subscription
// @Produce json
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/subscription/order [post]
// @Security BearerAuth
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSubscriptionOrder")
	defer scope.End()

	res, err := handler.service.CreateOrder(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create subscription order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Verify activates the plan after a successful checkout.
// @Summary Verify a subscription payment
// @Tags Subscription
// @Accept json
// @Produce json
// @Param request body dto.VerifyRequest true "Checkout response"
// @Success 200 {object} dto.VerifyResponse
// @Failure 400 {object} response.Error "Signature Invalid"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/subscription/verify [post]
// @Security BearerAuth
func (handler *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifySubscription")
	defer scope.End()

	req := dto.VerifyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Verify(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify subscription payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
