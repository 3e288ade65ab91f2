package service

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=../mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rentopia/config"
	"rentopia/infras/mail"
	"rentopia/infras/otel"
	bookingModel "rentopia/internal/domains/booking/model"
	bookingRepo "rentopia/internal/domains/booking/repository"
	"rentopia/internal/domains/notification/model"
	userModel "rentopia/internal/domains/user/model"
	userRepo "rentopia/internal/domains/user/repository"
	"rentopia/shared"
	"rentopia/shared/constant"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	mailDateFormat = "Mon, Jan 2, 2006"
	paisePerRupee  = 100
)

var errRecipientNotFound = errors.New("recipient not found")

// Dispatcher turns domain events into emails.
type Dispatcher interface {
	BookingConfirmed(ctx context.Context, event model.BookingConfirmed) error
	SubscriptionActivated(ctx context.Context, event model.SubscriptionActivated) error
}

type dispatcherImpl struct {
	bookingRepo bookingRepo.Booking
	userRepo    userRepo.User
	mailer      mail.Mailer
	cfg         *config.Config
	otel        otel.Otel
}

func NewDispatcher(bookingRepo bookingRepo.Booking, userRepo userRepo.User, mailer mail.Mailer, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		cfg:         cfg,
		otel:        otel,
	}
}

type bookingMailData struct {
	GuestName       string
	GuestPhone      string
	HostName        string
	PropertyTitle   string
	PropertyAddress string
	PropertyPhoto   string
	CheckIn         string
	CheckOut        string
	NumberOfGuests  int
	TotalAmount     string
	BookingID       string
	BookingsURL     string
}

type subscriptionMailData struct {
	UserName   string
	PlanName   string
	Amount     string
	ValidUntil string
}

// BookingConfirmed mails the guest and the host. Both sends are attempted even if one fails.
func (d *dispatcherImpl) BookingConfirmed(ctx context.Context, event model.BookingConfirmed) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingConfirmed")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := d.bookingRepo.GetWithPlace(ctx, shared.FilterByID(event.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to load confirmed booking")

		return fmt.Errorf("failed to load confirmed booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return fmt.Errorf("booking %s: %w", event.BookingID, errRecipientNotFound)
	}

	guest, err := d.user(ctx, booking.UserID)
	if err != nil {
		return err
	}

	host, err := d.user(ctx, booking.PlaceOwnerID)
	if err != nil {
		return err
	}

	data := bookingMailData{
		GuestName:       guest.Name,
		GuestPhone:      booking.Phone,
		HostName:        host.Name,
		PropertyTitle:   booking.PlaceTitle,
		PropertyAddress: booking.PlaceAddress,
		CheckIn:         booking.CheckIn.Format(mailDateFormat),
		CheckOut:        booking.CheckOut.Format(mailDateFormat),
		NumberOfGuests:  booking.NumberOfGuests,
		TotalAmount:     fmt.Sprintf("%.2f", booking.Price),
		BookingID:       booking.ID,
		BookingsURL:     strings.TrimSuffix(d.cfg.App.ClientURL, "/") + "/account/bookings",
	}

	if booking.Name != constant.Empty {
		data.GuestName = booking.Name
	}

	if len(booking.PlacePhotos) > 0 {
		data.PropertyPhoto = booking.PlacePhotos[0]
	}

	guestErr := d.send(ctx, guest, "Booking Confirmed - "+booking.PlaceTitle, templateBookingGuest, data)
	hostErr := d.send(ctx, host, "New Booking for "+booking.PlaceTitle+"!", templateBookingHost, data)

	return errors.Join(guestErr, hostErr)
}

func (d *dispatcherImpl) SubscriptionActivated(ctx context.Context, event model.SubscriptionActivated) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".SubscriptionActivated")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := d.user(ctx, event.UserID)
	if err != nil {
		return err
	}

	planName := event.PlanLabel
	if planName == constant.Empty {
		planName = event.Plan
	}

	data := subscriptionMailData{
		UserName:   user.Name,
		PlanName:   planName,
		Amount:     fmt.Sprintf("%.2f", float64(event.AmountPaise)/paisePerRupee),
		ValidUntil: event.Expiry.Format(mailDateFormat),
	}

	return d.send(ctx, user, "Subscription Activated - Rentopia Host", templateSubscription, data)
}

func (d *dispatcherImpl) user(ctx context.Context, id string) (userModel.User, error) {
	user, err := d.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to load mail recipient")

		return user, fmt.Errorf("failed to load mail recipient: %w", err)
	}

	if user.ID == constant.Empty {
		return user, fmt.Errorf("user %s: %w", id, errRecipientNotFound)
	}

	return user, nil
}

func (d *dispatcherImpl) send(ctx context.Context, to userModel.User, subject, template string, data any) error {
	html, text, err := render(template, data)
	if err != nil {
		log.Error().Err(err).Str("template", template).Msg("failed to render mail")

		return err
	}

	err = d.mailer.Send(ctx, mail.Message{
		To:      to.Email,
		ToName:  to.Name,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		log.Error().Err(err).Str("template", template).Str("to", to.Email).Msg("failed to send mail")

		return fmt.Errorf("failed to send %s mail: %w", template, err)
	}

	log.Info().Str("template", template).Str("to", to.Email).Msg("mail sent")

	return nil
}
