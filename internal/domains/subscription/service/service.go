package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rentopia/config"
	"rentopia/infras/otel"
	"rentopia/infras/payment"
	notificationModel "rentopia/internal/domains/notification/model"
	notification "rentopia/internal/domains/notification/service"
	"rentopia/internal/domains/subscription/model/dto"
	userDto "rentopia/internal/domains/user/model/dto"
	user "rentopia/internal/domains/user/service"
	"rentopia/shared"
	"rentopia/shared/constant"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	errSignatureInvalid = "Signature Invalid"
	msgActivated        = "Subscription activated"
)

type Subscription interface {
	CreateOrder(ctx context.Context) (dto.OrderResponse, error)
	Verify(ctx context.Context, req dto.VerifyRequest) (dto.VerifyResponse, error)
}

type serviceImpl struct {
	gateway   payment.Gateway
	users     user.User
	publisher notification.Publisher
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	gateway payment.Gateway,
	users user.User,
	publisher notification.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Subscription {
	return &serviceImpl{
		gateway:   gateway,
		users:     users,
		publisher: publisher,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) CreateOrder(ctx context.Context) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	order, err := s.gateway.CreateOrder(
		ctx,
		s.cfg.Subscription.AmountPaise,
		dto.Receipt(userID, timezone.Now()),
		map[string]string{"plan": s.cfg.Subscription.Plan, "user_id": userID},
	)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to create subscription order")

		return res, fmt.Errorf("failed to create subscription order: %w", err)
	}

	res.FromOrder(order, s.gateway.KeyID())

	return res, nil
}

// Verify activates the caller's plan once the checkout signature matches. The confirmation mail
// goes out through the publisher and never fails the request.
func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyRequest) (res dto.VerifyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("Missing authentication") // nolint:wrapcheck
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Warn().Str("order_id", req.OrderID).Str("user_id", userID).Msg("subscription signature mismatch")

		return res, failure.BadRequestFromString(errSignatureInvalid) // nolint:wrapcheck
	}

	expiry := timezone.Now().AddDate(0, 0, s.cfg.Subscription.DurationDays)

	err = s.users.ActivateSubscription(ctx, userID, userDto.ActivateSubscription{
		Plan:      s.cfg.Subscription.Plan,
		PaymentID: req.PaymentID,
		Expiry:    expiry,
	})
	if err != nil {
		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to activate subscription: %w", err)
	}

	log.Info().Str("user_id", userID).Str("payment_id", req.PaymentID).Msg("subscription activated")

	s.publisher.SubscriptionActivated(ctx, notificationModel.SubscriptionActivated{
		UserID:      userID,
		Plan:        s.cfg.Subscription.Plan,
		PlanLabel:   s.cfg.Subscription.PlanLabel,
		AmountPaise: s.cfg.Subscription.AmountPaise,
		PaymentID:   req.PaymentID,
		Expiry:      expiry,
	})

	return dto.VerifyResponse{
		Message: msgActivated,
		Plan:    s.cfg.Subscription.Plan,
		Expiry:  timezone.Format(expiry, constant.DateFormat),
	}, nil
}
