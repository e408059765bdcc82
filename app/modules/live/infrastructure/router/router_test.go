package liverouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	scorecardevents "github.com/Black-And-White-Club/three-under/app/modules/scorecard/events"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type broadcastCall struct {
	slotKey, event string
}

type FakeBroadcaster struct {
	calls []broadcastCall
	err   error
}

func (f *FakeBroadcaster) Broadcast(ctx context.Context, slotKey, event string, data []byte) (int, error) {
	f.calls = append(f.calls, broadcastCall{slotKey: slotKey, event: event})
	return 1, f.err
}

func newTestRouter(hub Broadcaster) *LiveRouter {
	return NewLiveRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil, hub)
}

func TestHandle_ForwardsToSlot(t *testing.T) {
	hub := &FakeBroadcaster{}
	r := newTestRouter(hub)

	data, err := json.Marshal(scorecardevents.RoundEventPayloadV1{SlotKey: "RI_Saved_Game1_riverside", CourseID: "riverside"})
	require.NoError(t, err)

	err = r.handle(scorecardevents.ScoreUpdatedV1)(message.NewMessage(watermill.NewUUID(), data))
	require.NoError(t, err)
	assert.Equal(t, []broadcastCall{{slotKey: "RI_Saved_Game1_riverside", event: scorecardevents.ScoreUpdatedV1}}, hub.calls)
}

func TestHandle_DropsUndecodablePayload(t *testing.T) {
	hub := &FakeBroadcaster{}
	r := newTestRouter(hub)

	err := r.handle(scorecardevents.RoundDeletedV1)(message.NewMessage(watermill.NewUUID(), []byte("{")))
	require.NoError(t, err)
	assert.Empty(t, hub.calls)
}

func TestHandle_BroadcastErrorIsReturned(t *testing.T) {
	hub := &FakeBroadcaster{err: errors.New("encode")}
	r := newTestRouter(hub)

	err := r.handle(scorecardevents.RoundStartedV1)(message.NewMessage(watermill.NewUUID(), []byte(`{"slotKey":"k"}`)))
	require.Error(t, err)
}
