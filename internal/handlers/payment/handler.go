package payment

import (
	"net/http"
	"rentopia/infras/otel"
	"rentopia/internal/domains/payment/model/dto"
	"rentopia/internal/domains/payment/service"
	"rentopia/shared/constant"
	"rentopia/shared/validator"
	"rentopia/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/placesBooking", handler.CreateOrder)
	router.Post("/verify", handler.Verify)
}

// CreateOrder opens a gateway order.
// @Summary Create a payment order
// @Description With booking_id the amount is taken from the caller's pending booking and the order is attached to it. Otherwise amount (rupees) is charged as is.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Order"
// @Success 200 {object} dto.CreateOrderResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/placesBooking [post]
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	req := dto.CreateOrderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Verify checks a checkout signature.
// @Summary Verify a payment signature
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.VerifyRequest true "Checkout response, flat or nested under response"
// @Success 200 {object} response.Message "Signature Valid"
// @Failure 400 {object} response.Error "Signature Invalid"
// @Router /api/verify [post]
func (handler *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Verify")
	defer scope.End()

	req := dto.VerifyRequest{}

	if err := validator.Decode(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	signed := req.Payment()

	if err := validator.ValidateStruct(&signed); err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Verify(ctx, signed); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, service.MsgSignatureValid)
}
