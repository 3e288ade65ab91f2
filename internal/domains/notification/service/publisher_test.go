package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentopia/config"
	"rentopia/infras/kafka"
	kafkaMocks "rentopia/infras/kafka/mocks"
	notificationMocks "rentopia/internal/domains/notification/mocks"
	"rentopia/internal/domains/notification/model"
	"rentopia/internal/domains/notification/service"
)

func publisherConfig(kafkaEnabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Enable = kafkaEnabled
	cfg.Kafka.Topics.BookingConfirmed = "booking.confirmed"
	cfg.Kafka.Topics.SubscriptionActivated = "subscription.activated"

	return cfg
}

func TestPublisher_BookingConfirmed_Kafka(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := kafkaMocks.NewMockClient(ctrl)
	dispatcher := notificationMocks.NewMockDispatcher(ctrl)

	done := make(chan struct{})

	client.EXPECT().SendMessages(gomock.Any(), "booking.confirmed", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			defer close(done)

			assert.Len(t, messages, 1)
			assert.Equal(t, "b1", messages[0].Key)

			return nil
		})

	p := service.NewPublisher(publisherConfig(true), client, dispatcher)
	p.BookingConfirmed(context.Background(), model.BookingConfirmed{BookingID: "b1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not published")
	}
}

func TestPublisher_SubscriptionActivated_InProcess(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := kafkaMocks.NewMockClient(ctrl)
	dispatcher := notificationMocks.NewMockDispatcher(ctrl)

	done := make(chan struct{})

	dispatcher.EXPECT().SubscriptionActivated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event model.SubscriptionActivated) error {
			defer close(done)

			assert.Equal(t, "host-1", event.UserID)

			return errors.New("smtp down")
		})

	p := service.NewPublisher(publisherConfig(false), client, dispatcher)
	p.SubscriptionActivated(context.Background(), model.SubscriptionActivated{UserID: "host-1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not dispatched")
	}
}

func TestPublisher_CancelledContextStillDispatches(t *testing.T) {
	ctrl := gomock.NewController(t)

	dispatcher := notificationMocks.NewMockDispatcher(ctrl)

	done := make(chan struct{})

	dispatcher.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ model.BookingConfirmed) error {
			defer close(done)

			assert.NoError(t, ctx.Err())

			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := service.NewPublisher(publisherConfig(false), kafkaMocks.NewMockClient(ctrl), dispatcher)
	p.BookingConfirmed(ctx, model.BookingConfirmed{BookingID: "b1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not dispatched")
	}
}
