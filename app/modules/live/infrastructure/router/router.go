package liverouter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	liveservice "github.com/Black-And-White-Club/three-under/app/modules/live/application"
	scorecardevents "github.com/Black-And-White-Club/three-under/app/modules/scorecard/events"
	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Broadcaster is the part of the hub the router needs.
type Broadcaster interface {
	Broadcast(ctx context.Context, slotKey, event string, data []byte) (int, error)
}

var _ Broadcaster = (*liveservice.Hub)(nil)

// LiveRouter forwards scorecard events to the hub.
type LiveRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	hub        Broadcaster
}

// NewLiveRouter creates a LiveRouter on an existing Watermill router.
func NewLiveRouter(logger *slog.Logger, router *message.Router, subscriber message.Subscriber, hub Broadcaster) *LiveRouter {
	return &LiveRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		hub:        hub,
	}
}

// Configure registers one handler per scorecard topic.
func (r *LiveRouter) Configure() {
	for _, topic := range scorecardevents.Topics {
		r.Router.AddNoPublisherHandler(
			fmt.Sprintf("live.%s", topic),
			topic,
			r.subscriber,
			r.handle(topic),
		)
	}
}

func (r *LiveRouter) handle(topic string) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := attr.WithCorrelationID(msg.Context(), msg.Metadata.Get(attr.CorrelationIDMetadataKey))

		var payload scorecardevents.RoundEventPayloadV1
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			// A payload that cannot be decoded will not decode on retry either.
			r.logger.ErrorContext(ctx, "Dropping undecodable scorecard event",
				attr.String("topic", topic),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return nil
		}

		n, err := r.hub.Broadcast(ctx, payload.SlotKey, topic, msg.Payload)
		if err != nil {
			return fmt.Errorf("failed to broadcast %s: %w", topic, err)
		}
		r.logger.DebugContext(ctx, "Forwarded scorecard event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.SlotKey(payload.SlotKey),
			attr.Int("clients", n),
		)
		return nil
	}
}
