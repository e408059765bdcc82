package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	nc "github.com/nats-io/nats.go"
)

func natsOptions(logger watermill.LoggerAdapter) []nc.Option {
	return []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription", err, watermill.LogFields{
					"subject": s.Subject,
					"queue":   s.Queue,
				})
			} else {
				logger.Error("Error in connection", err, nil)
			}
		}),
	}
}

// newNATSBus connects a core NATS publisher and subscriber. Every server
// instance receives every round event, so no queue group is used.
func newNATSBus(ctx context.Context, url string, wmLogger watermill.LoggerAdapter, logger *slog.Logger) (*EventBus, error) {
	options := natsOptions(wmLogger)
	jsConfig := nats.JetStreamConfig{Disabled: true}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         url,
			NatsOptions: options,
			Marshaler:   &nats.NATSMarshaler{},
			JetStream:   jsConfig,
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:            url,
			NatsOptions:    options,
			Unmarshaler:    &nats.NATSMarshaler{},
			JetStream:      jsConfig,
			CloseTimeout:   10 * time.Second,
			AckWaitTimeout: 30 * time.Second,
		},
		wmLogger,
	)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Event bus connected to NATS", slog.String("url", url))

	return &EventBus{
		Publisher:  publisher,
		Subscriber: subscriber,
		driver:     DriverNATS,
		closers:    []func() error{publisher.Close, subscriber.Close},
	}, nil
}
