package scorecardintegrationtests

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	coursecatalog "github.com/Black-And-White-Club/three-under/app/modules/course/infrastructure/catalog"
	scorecardservice "github.com/Black-And-White-Club/three-under/app/modules/scorecard/application"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	scorecardevents "github.com/Black-And-White-Club/three-under/app/modules/scorecard/events"
	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/three-under/integration_tests/testutils"
	"github.com/Black-And-White-Club/three-under/internal/eventbus"
	scorecardmetrics "github.com/Black-And-White-Club/three-under/internal/observability/metrics/scorecard"
)

func newService(t *testing.T, store scorecarddb.Store, publisher message.Publisher) *scorecardservice.ScorecardService {
	t.Helper()
	catalog, err := coursecatalog.Default()
	require.NoError(t, err)
	return scorecardservice.NewScorecardService(
		scorecarddb.NewRoundRepository(store),
		catalog,
		publisher,
		slog.Default(),
		scorecardmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
	)
}

func receive(t *testing.T, messages <-chan *message.Message) scorecardevents.RoundEventPayloadV1 {
	t.Helper()
	select {
	case msg := <-messages:
		msg.Ack()
		var payload scorecardevents.RoundEventPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		return payload
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for event")
		return scorecardevents.RoundEventPayloadV1{}
	}
}

func TestRoundSurvivesRestartOnPostgres(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()
	gen := testutils.NewTestDataGenerator()
	t.Logf("data seed %d", gen.Seed())

	store := env.PostgresStore(t)
	players := gen.PlayerNames(4)

	first := newService(t, store, nil)
	card, err := first.StartNewRound(ctx, "riverside", players)
	require.NoError(t, err)

	want := make([]int, len(card.Pars))
	for hole, par := range card.Pars {
		value := gen.Strokes(par)
		_, err := first.SetScore(ctx, card.SlotKey, 0, hole, value)
		require.NoError(t, err)
		want[hole] = scorecarddomain.Entry(value).Strokes()
	}

	// A second service has no cached session and must read the save back.
	second := newService(t, store, nil)
	resumed, err := second.ContinueRound(ctx, card.SlotKey)
	require.NoError(t, err)
	require.Len(t, resumed.Players, 4)
	assert.Equal(t, players[0], resumed.Players[0].Name)

	total := 0
	for _, v := range want {
		total += v
	}
	assert.Equal(t, total, resumed.Players[0].Totals.Total)

	slots, err := second.ListSlots(ctx, "riverside")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Occupied)
	assert.False(t, slots[1].Occupied)
}

func TestEventsOverNATS(t *testing.T) {
	env := testEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bus, err := eventbus.New(ctx, eventbus.Config{Driver: eventbus.DriverNATS, URL: env.NATSURL}, slog.Default())
	require.NoError(t, err)
	defer bus.Close()

	started, err := bus.Subscriber.Subscribe(ctx, scorecardevents.RoundStartedV1)
	require.NoError(t, err)
	updated, err := bus.Subscriber.Subscribe(ctx, scorecardevents.ScoreUpdatedV1)
	require.NoError(t, err)
	// The subscriber has its own connection; give the server time to register it.
	time.Sleep(250 * time.Millisecond)

	svc := newService(t, env.NATSKVStore(t), bus.Publisher)
	gen := testutils.NewTestDataGenerator()

	card, err := svc.StartNewRound(ctx, "riverside", gen.PlayerNames(2))
	require.NoError(t, err)

	payload := receive(t, started)
	assert.Equal(t, card.SlotKey, payload.SlotKey)
	assert.Equal(t, "riverside", payload.CourseID)

	_, err = svc.SetScore(ctx, card.SlotKey, 1, 17, "5")
	require.NoError(t, err)

	payload = receive(t, updated)
	require.NotNil(t, payload.Player)
	require.NotNil(t, payload.Hole)
	require.NotNil(t, payload.Value)
	assert.Equal(t, 1, *payload.Player)
	assert.Equal(t, 17, *payload.Hole)
	assert.Equal(t, scorecarddomain.Entry("5"), *payload.Value)
}
