package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"rentopia/config"
	"rentopia/infras/otel"
	"rentopia/infras/payment"
	"rentopia/internal/domains/booking/model"
	"rentopia/internal/domains/booking/model/dto"
	"rentopia/internal/domains/booking/repository"
	notificationModel "rentopia/internal/domains/notification/model"
	notification "rentopia/internal/domains/notification/service"
	placeModel "rentopia/internal/domains/place/model"
	placeRepo "rentopia/internal/domains/place/repository"
	"rentopia/shared"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	"rentopia/shared/failure"
	"rentopia/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	errNotAvailable      = "Property is not available for the selected dates"
	errBookingNotFound   = "Booking not found"
	errPlaceNotFound     = "Place not found"
	errNotYourBooking    = "Not your booking"
	errTooManyGuests     = "Number of guests exceeds the maximum allowed for this place"
	errCheckInPassed     = "Cannot cancel a booking whose check-in date has passed"
	errNoPaymentOrder    = "Booking has no payment order"
	errSignatureInvalid  = "Signature Invalid"
	errMissingAuth       = "Missing authentication"
	errInvalidTransition = "Booking cannot move from %s to %s"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetByUser(ctx context.Context) ([]dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	ConfirmPayment(ctx context.Context, id string, req dto.ConfirmPaymentRequest) (dto.BookingResponse, error)
	MarkPaymentFailed(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	placeRepo placeRepo.Place
	gateway   payment.Gateway
	publisher notification.Publisher
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	placeRepo placeRepo.Place,
	gateway payment.Gateway,
	publisher notification.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		placeRepo: placeRepo,
		gateway:   gateway,
		publisher: publisher,
		cfg:       cfg,
		otel:      otel,
	}
}

// Create holds a lock on the place row while checking for overlapping stays, so two
// concurrent requests for the same dates cannot both be inserted.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(errMissingAuth) // nolint:wrapcheck
	}

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		place, err := s.placeRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(req.Place, placeModel.FieldID, placeModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock place: %w", err)
		}

		if place.ID == constant.Empty {
			return failure.NotFound(errPlaceNotFound) // nolint:wrapcheck
		}

		if req.NumberOfGuests > place.MaxGuests {
			return failure.Unprocessable(errTooManyGuests) // nolint:wrapcheck
		}

		overlapping, err := s.repo.CountTx(ctx, sqltx, dto.OverlapFilter(place.ID, checkIn, checkOut, s.cfg.App.Booking.SameDayTurnover))
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}

		if overlapping > 0 {
			return failure.BadRequestFromString(errNotAvailable) // nolint:wrapcheck
		}

		booking = req.ToModel(userID, checkIn, checkOut, place.Price, timezone.Now())

		if err = s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		if failure.IsFailure(err) {
			return res, err
		}

		log.Error().Err(err).Str("place_id", req.Place).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("place_id", booking.PlaceID).Msg("booking created")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetByUser(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUser")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(errMissingAuth) // nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldCheckIn, SortDir: gDto.SortDirDesc}

	bookings, err := s.repo.GetAllWithPlace(ctx, params, shared.FilterByID(userID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		res[i].FromModelWithPlace(b)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(errMissingAuth) // nolint:wrapcheck
	}

	booking, err := s.repo.GetWithPlace(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	if booking.UserID != userID && booking.PlaceOwnerID != userID {
		return res, failure.Forbidden(errNotYourBooking) // nolint:wrapcheck
	}

	res.FromModelWithPlace(booking)

	return res, nil
}

// ConfirmPayment verifies the gateway signature against the order stored on the booking.
func (s *serviceImpl) ConfirmPayment(ctx context.Context, id string, req dto.ConfirmPaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmPayment")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, changed, err := s.settle(ctx, id, model.StatusConfirmed, func(b model.Booking) (map[string]any, error) {
		if b.PaymentOrderID == nil || *b.PaymentOrderID == constant.Empty {
			return nil, failure.Unprocessable(errNoPaymentOrder) // nolint:wrapcheck
		}

		if !s.gateway.VerifySignature(*b.PaymentOrderID, req.PaymentID, req.Signature) {
			return nil, failure.BadRequestFromString(errSignatureInvalid) // nolint:wrapcheck
		}

		return map[string]any{model.FieldPaymentID: req.PaymentID}, nil
	})
	if err != nil {
		return res, err
	}

	if changed {
		s.publisher.BookingConfirmed(ctx, notificationModel.BookingConfirmed{BookingID: booking.ID, PaymentID: req.PaymentID})
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) MarkPaymentFailed(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaymentFailed")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, _, err := s.settle(ctx, id, model.StatusPaymentFailed, func(model.Booking) (map[string]any, error) {
		return map[string]any{}, nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// settle moves a pending booking to target exactly once. Repeating the same transition is a no-op
// reported with changed=false.
func (s *serviceImpl) settle(
	ctx context.Context,
	id, target string,
	fields func(b model.Booking) (map[string]any, error),
) (booking model.Booking, changed bool, err error) {
	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return booking, false, failure.Unauthorized(errMissingAuth) // nolint:wrapcheck
	}

	err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		booking, err = s.lockOwned(ctx, sqltx, id, userID)
		if err != nil {
			return err
		}

		if booking.Status == target {
			return nil
		}

		if booking.Status != model.StatusPendingPayment {
			return failure.Unprocessable(fmt.Sprintf(errInvalidTransition, booking.Status, target)) // nolint:wrapcheck
		}

		update, err := fields(booking)
		if err != nil {
			return err
		}

		now := timezone.Now()
		update[model.FieldStatus] = target
		update[constant.FieldModifiedAt] = now
		update[constant.FieldModifiedBy] = userID

		if err = s.repo.UpdateTx(ctx, sqltx, update, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		booking.Status = target
		booking.ModifiedAt = now
		booking.ModifiedBy = userID

		if paymentID, ok := update[model.FieldPaymentID].(string); ok {
			booking.PaymentID = &paymentID
		}

		changed = true

		return nil
	})
	if err != nil {
		if failure.IsFailure(err) {
			return booking, false, err
		}

		log.Error().Err(err).Str("booking_id", id).Str("target", target).Msg("failed to settle booking")

		return booking, false, fmt.Errorf("failed to settle booking: %w", err)
	}

	if changed {
		log.Info().Str("booking_id", id).Str("status", target).Msg("booking settled")
	}

	return booking, changed, nil
}

// Cancel is allowed for the guest while the stay has not started and the booking still holds its dates.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(errMissingAuth) // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		booking, err = s.lockOwned(ctx, sqltx, id, userID)
		if err != nil {
			return err
		}

		if booking.Status == model.StatusCancelled {
			return nil
		}

		if booking.Status != model.StatusPendingPayment && booking.Status != model.StatusConfirmed {
			return failure.Unprocessable(fmt.Sprintf(errInvalidTransition, booking.Status, model.StatusCancelled)) // nolint:wrapcheck
		}

		if !booking.CheckIn.After(timezone.Today()) {
			return failure.Unprocessable(errCheckInPassed) // nolint:wrapcheck
		}

		now := timezone.Now()

		update := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			model.FieldCancelledAt:   now,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: userID,
		}

		if err = s.repo.UpdateTx(ctx, sqltx, update, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		booking.Status = model.StatusCancelled
		booking.CancelledAt = &now
		booking.ModifiedAt = now
		booking.ModifiedBy = userID

		return nil
	})
	if err != nil {
		if failure.IsFailure(err) {
			return res, err
		}

		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) lockOwned(ctx context.Context, sqltx *sqlx.Tx, id, userID string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	if booking.UserID != userID {
		return booking, failure.Forbidden(errNotYourBooking) // nolint:wrapcheck
	}

	return booking, nil
}
