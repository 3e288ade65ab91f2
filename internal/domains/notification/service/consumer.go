package service

import (
	"context"
	"rentopia/config"
	"rentopia/infras/kafka"
	"rentopia/internal/domains/notification/model"
	"sync"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer feeds Kafka events to the dispatcher until ctx is done.
type Consumer struct {
	cfg        *config.Config
	kafka      kafka.Client
	dispatcher Dispatcher
}

func NewConsumer(cfg *config.Config, kafka kafka.Client, dispatcher Dispatcher) *Consumer {
	return &Consumer{
		cfg:        cfg,
		kafka:      kafka,
		dispatcher: dispatcher,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	topics := c.cfg.Kafka.Topics

	var wg sync.WaitGroup

	wg.Add(2) //nolint:mnd

	go func() {
		defer wg.Done()
		c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, topics.BookingConfirmed, c.HandleBookingConfirmed)
	}()

	go func() {
		defer wg.Done()
		c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, topics.SubscriptionActivated, c.HandleSubscriptionActivated)
	}()

	wg.Wait()
}

func (c *Consumer) HandleBookingConfirmed(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.Decode[model.BookingConfirmed](msg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.dispatcher.BookingConfirmed(ctx, event)
}

func (c *Consumer) HandleSubscriptionActivated(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.Decode[model.SubscriptionActivated](msg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.dispatcher.SubscriptionActivated(ctx, event)
}
