package liveservice

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeLiveMetrics struct {
	connected, disconnected, delivered, dropped int
}

func (f *FakeLiveMetrics) ClientConnected()       { f.connected++ }
func (f *FakeLiveMetrics) ClientDisconnected()    { f.disconnected++ }
func (f *FakeLiveMetrics) RecordDelivered(string) { f.delivered++ }
func (f *FakeLiveMetrics) RecordDropped()         { f.dropped++ }

func newTestHub(buffer int) (*Hub, *FakeLiveMetrics) {
	m := &FakeLiveMetrics{}
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), m, buffer), m
}

const key = "RI_Saved_Game1_riverside"

func TestHub_BroadcastOnlyToSlot(t *testing.T) {
	hub, m := newTestHub(4)
	watcher := hub.Register(key)
	other := hub.Register("RI_Saved_Game2_riverside")

	n, err := hub.Broadcast(context.Background(), key, "scorecard.score.updated.v1", []byte(`{"slotKey":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	frame := <-watcher.Messages()
	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, "scorecard.score.updated.v1", env.Event)
	assert.JSONEq(t, `{"slotKey":"x"}`, string(env.Data))

	assert.Empty(t, other.Messages())
	assert.Equal(t, 2, m.connected)
	assert.Equal(t, 1, m.delivered)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, m := newTestHub(1)
	slow := hub.Register(key)

	_, err := hub.Broadcast(context.Background(), key, "e", []byte(`1`))
	require.NoError(t, err)
	n, err := hub.Broadcast(context.Background(), key, "e", []byte(`2`))
	require.NoError(t, err)

	assert.Equal(t, 0, n)
	assert.Equal(t, 0, hub.ClientCount(key))
	assert.Equal(t, 1, m.dropped)

	<-slow.Messages()
	_, open := <-slow.Messages()
	assert.False(t, open, "dropped client channel should be closed")

	// Unregistering an already dropped client does nothing.
	hub.Unregister(slow)
	assert.Equal(t, 1, m.disconnected)
}

func TestHub_Close(t *testing.T) {
	hub, m := newTestHub(0)
	a := hub.Register(key)
	hub.Register(key)

	hub.Close()

	_, open := <-a.Messages()
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount(key))
	assert.Equal(t, 2, m.disconnected)
}
