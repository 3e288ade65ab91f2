package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rentopia/infras/otel"
	"rentopia/infras/payment"
	bookingModel "rentopia/internal/domains/booking/model"
	bookingRepo "rentopia/internal/domains/booking/repository"
	"rentopia/internal/domains/payment/model/dto"
	"rentopia/shared"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ErrSignatureInvalid = "Signature Invalid"
	MsgSignatureValid   = "Signature Valid"

	receiptPrefix = "bk_"
)

type Payment interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error)
	Verify(ctx context.Context, req dto.SignedPayment) error
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	gateway     payment.Gateway
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, gateway payment.Gateway, otel otel.Otel) Payment {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		gateway:     gateway,
		otel:        otel,
	}
}

// CreateOrder opens a gateway order. For a booking the amount comes from the booking and the
// order id is stored on it so the confirm callback can verify against it.
func (s *serviceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (res dto.CreateOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.BookingID == constant.Empty {
		if req.Amount <= 0 {
			return res, failure.BadRequestFromString("amount must be greater than zero") // nolint:wrapcheck
		}

		return s.createOrder(ctx, dto.ToPaise(req.Amount), fmt.Sprintf("rcpt_%d", timezone.Now().UnixNano()), nil)
	}

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	filter := shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName)

	booking, err := s.bookingRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("Booking not found") // nolint:wrapcheck
	}

	if booking.UserID != userID {
		return res, failure.Forbidden("Not your booking") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusPendingPayment {
		return res, failure.Unprocessable("Booking is not awaiting payment") // nolint:wrapcheck
	}

	receipt := receiptPrefix + strings.ReplaceAll(booking.ID, "-", constant.Empty)

	res, err = s.createOrder(ctx, dto.ToPaise(booking.Price), receipt, map[string]string{"booking_id": booking.ID})
	if err != nil {
		return res, err
	}

	update := map[string]any{
		bookingModel.FieldPaymentOrderID: res.Order.ID,
		constant.FieldModifiedAt:         timezone.Now(),
		constant.FieldModifiedBy:         userID,
	}

	pendingOnly := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.StatusPendingPayment, Table: bookingModel.TableName},
		},
	}

	if err = s.bookingRepo.Update(ctx, update, pendingOnly); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to attach payment order")

		return res, fmt.Errorf("failed to attach payment order: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) createOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (res dto.CreateOrderResponse, err error) {
	order, err := s.gateway.CreateOrder(ctx, amountPaise, receipt, notes)
	if err != nil {
		log.Error().Err(err).Str("receipt", receipt).Msg("failed to create payment order")

		return res, fmt.Errorf("failed to create payment order: %w", err)
	}

	res.Order = order
	res.Key = s.gateway.KeyID()

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context, req dto.SignedPayment) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Warn().Str("order_id", req.OrderID).Msg("payment signature mismatch")

		return failure.BadRequestFromString(ErrSignatureInvalid) // nolint:wrapcheck
	}

	return nil
}
