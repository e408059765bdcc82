// Package eventbus provides the Watermill publisher and subscriber the
// scorecard module publishes round events on, and the router that consumes them.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	DriverMemory = "memory"
	DriverNATS   = "nats"
)

// Config selects the transport.
type Config struct {
	Driver string
	// URL is the NATS server URL, required for the nats driver.
	URL string
	// OutputBuffer sizes the in-process subscriber channels.
	OutputBuffer int64
}

// EventBus bundles a publisher and subscriber over one transport.
type EventBus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	driver     string
	closers    []func() error
}

// New builds the event bus for cfg.Driver. An empty driver selects the
// in-process Go channel transport.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	switch strings.ToLower(cfg.Driver) {
	case "", DriverMemory:
		buffer := cfg.OutputBuffer
		if buffer <= 0 {
			buffer = 64
		}
		pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, wmLogger)
		logger.InfoContext(ctx, "Event bus using in-process transport")
		return &EventBus{
			Publisher:  pubSub,
			Subscriber: pubSub,
			driver:     DriverMemory,
			closers:    []func() error{pubSub.Close},
		}, nil
	case DriverNATS:
		if cfg.URL == "" {
			return nil, errors.New("eventbus: nats driver requires a URL")
		}
		return newNATSBus(ctx, cfg.URL, wmLogger, logger)
	default:
		return nil, fmt.Errorf("eventbus: unknown driver %q", cfg.Driver)
	}
}

// Driver reports the transport in use.
func (b *EventBus) Driver() string { return b.driver }

// Close shuts down the publisher and subscriber.
func (b *EventBus) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
