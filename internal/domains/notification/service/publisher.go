package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"rentopia/config"
	"rentopia/infras/kafka"
	"rentopia/internal/domains/notification/model"

	"github.com/rs/zerolog/log"
)

// Publisher hands events to Kafka when it is enabled and to the local dispatcher otherwise.
// Publishing never blocks the caller and failures are only logged.
type Publisher interface {
	BookingConfirmed(ctx context.Context, event model.BookingConfirmed)
	SubscriptionActivated(ctx context.Context, event model.SubscriptionActivated)
}

type publisherImpl struct {
	cfg        *config.Config
	kafka      kafka.Client
	dispatcher Dispatcher
}

func NewPublisher(cfg *config.Config, kafka kafka.Client, dispatcher Dispatcher) Publisher {
	return &publisherImpl{
		cfg:        cfg,
		kafka:      kafka,
		dispatcher: dispatcher,
	}
}

func (p *publisherImpl) BookingConfirmed(ctx context.Context, event model.BookingConfirmed) {
	p.publish(ctx, p.cfg.Kafka.Topics.BookingConfirmed, event.BookingID, event, func(c context.Context) error {
		return p.dispatcher.BookingConfirmed(c, event)
	})
}

func (p *publisherImpl) SubscriptionActivated(ctx context.Context, event model.SubscriptionActivated) {
	p.publish(ctx, p.cfg.Kafka.Topics.SubscriptionActivated, event.UserID, event, func(c context.Context) error {
		return p.dispatcher.SubscriptionActivated(c, event)
	})
}

func (p *publisherImpl) publish(ctx context.Context, topic, key string, event any, local func(context.Context) error) {
	c := context.WithoutCancel(ctx)

	go func() {
		if p.cfg.Kafka.Enable {
			if err := p.kafka.SendMessages(c, topic, kafka.Message{Key: key, Value: event}); err != nil {
				log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to publish event")
			}

			return
		}

		if err := local(c); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to dispatch event")
		}
	}()
}
