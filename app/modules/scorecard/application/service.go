package scorecardservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	scorecardevents "github.com/Black-And-White-Club/three-under/app/modules/scorecard/events"
	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
	scorecardmetrics "github.com/Black-And-White-Club/three-under/internal/observability/metrics/scorecard"
	"github.com/Black-And-White-Club/three-under/internal/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ScorecardService"

// session is an open round. Sessions are the source of truth for rounds the
// process has touched; the store is written after every change.
type session struct {
	course  coursedomain.Course
	round   scorecarddomain.Round
	warning string
}

// outboundEvent is published once the session lock has been released.
type outboundEvent struct {
	topic   string
	payload scorecardevents.RoundEventPayloadV1
}

// ScorecardService implements the Service interface.
type ScorecardService struct {
	repo      scorecarddb.Repository
	courses   CourseLookup
	publisher message.Publisher
	logger    *slog.Logger
	metrics   scorecardmetrics.ScorecardMetrics
	tracer    trace.Tracer

	mu       sync.Mutex
	sessions map[string]*session
}

// NewScorecardService creates a new ScorecardService. publisher may be nil.
func NewScorecardService(
	repo scorecarddb.Repository,
	courses CourseLookup,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics scorecardmetrics.ScorecardMetrics,
	tracer trace.Tracer,
) *ScorecardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScorecardService{
		repo:      repo,
		courses:   courses,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		sessions:  make(map[string]*session),
	}
}

type scorecardResult = results.OperationResult[*scorecarddomain.Scorecard, error]

// ListSlots reports both slots of a course and who is playing in occupied ones.
func (s *ScorecardService) ListSlots(ctx context.Context, courseID string) ([]scorecarddomain.Slot, error) {
	result, err := withTelemetry(s, ctx, "ListSlots", courseID, func(ctx context.Context) (results.OperationResult[[]scorecarddomain.Slot, error], error) {
		slots, err := s.listSlotsLogic(ctx, courseID)
		if err != nil {
			return classify[[]scorecarddomain.Slot](err)
		}
		return results.SuccessResult[[]scorecarddomain.Slot, error](slots), nil
	})
	return unwrap(result, err)
}

func (s *ScorecardService) listSlotsLogic(ctx context.Context, courseID string) ([]scorecarddomain.Slot, error) {
	course, err := s.courses.Get(courseID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]scorecarddomain.Slot, 0, scorecarddomain.SlotCount)
	for i, key := range scorecarddomain.SlotKeys(course) {
		slot := scorecarddomain.Slot{Key: key, Number: i + 1}
		if sess, ok := s.sessions[key]; ok {
			slot.Occupied = true
			slot.Players = append([]string(nil), sess.round.Players...)
			slots = append(slots, slot)
			continue
		}

		round, err := s.repo.LoadRound(ctx, key, course.ID)
		var malformed *scorecarddomain.MalformedSaveDataError
		switch {
		case err == nil:
			slot.Occupied = true
			slot.Players = round.Players
		case errors.Is(err, scorecarddomain.ErrSaveNotFound):
		case errors.As(err, &malformed):
			slot.Occupied = true
		default:
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// StartNewRound creates a round in the first free slot. Blank names are
// dropped; the remaining names are kept exactly as entered.
func (s *ScorecardService) StartNewRound(ctx context.Context, courseID string, playerNames []string) (*scorecarddomain.Scorecard, error) {
	var evt *outboundEvent
	result, err := withTelemetry(s, ctx, "StartNewRound", courseID, func(ctx context.Context) (scorecardResult, error) {
		card, e, err := s.startNewRoundLogic(ctx, courseID, playerNames)
		if err != nil {
			return classify[*scorecarddomain.Scorecard](err)
		}
		evt = e
		return results.SuccessResult[*scorecarddomain.Scorecard, error](card), nil
	})
	card, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, evt)
	return card, nil
}

func (s *ScorecardService) startNewRoundLogic(ctx context.Context, courseID string, playerNames []string) (*scorecarddomain.Scorecard, *outboundEvent, error) {
	course, err := s.courses.Get(courseID)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slotKey := ""
	for _, key := range scorecarddomain.SlotKeys(course) {
		if _, open := s.sessions[key]; open {
			continue
		}
		exists, err := s.repo.RoundExists(ctx, key)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			slotKey = key
			break
		}
	}
	if slotKey == "" {
		return nil, nil, scorecarddomain.ErrSlotsExhausted
	}

	players := make([]string, 0, len(playerNames))
	for _, name := range playerNames {
		if strings.TrimSpace(name) != "" {
			players = append(players, name)
		}
	}
	switch {
	case len(players) == 0:
		return nil, nil, scorecarddomain.ErrNoPlayers
	case len(players) > scorecarddomain.MaxPlayers:
		return nil, nil, fmt.Errorf("%w: got %d", scorecarddomain.ErrTooManyPlayers, len(players))
	}

	round := scorecarddomain.NewRound(course.ID, players)
	if err := s.repo.SaveRound(ctx, slotKey, round); err != nil {
		if s.metrics != nil {
			s.metrics.RecordSaveFailure(ctx, "StartNewRound")
		}
		return nil, nil, err
	}

	sess := &session{course: course, round: round}
	s.sessions[slotKey] = sess
	if s.metrics != nil {
		s.metrics.RecordRoundStarted(ctx, course.ID)
	}

	card := s.view(slotKey, sess)
	return card, &outboundEvent{
		topic: scorecardevents.RoundStartedV1,
		payload: scorecardevents.RoundEventPayloadV1{
			SlotKey:   slotKey,
			CourseID:  course.ID,
			Scorecard: card,
		},
	}, nil
}

// ContinueRound opens a saved round. An unreadable save is replaced by a blank
// four-player card and reported through the view's save warning.
func (s *ScorecardService) ContinueRound(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error) {
	result, err := withTelemetry(s, ctx, "ContinueRound", slotKey, func(ctx context.Context) (scorecardResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		sess, err := s.sessionLocked(ctx, slotKey)
		if err != nil {
			return classify[*scorecarddomain.Scorecard](err)
		}
		return results.SuccessResult[*scorecarddomain.Scorecard, error](s.view(slotKey, sess)), nil
	})
	return unwrap(result, err)
}

// SetScore records a hole entry. A failed write keeps the change in memory
// and is reported through the view's save warning.
func (s *ScorecardService) SetScore(ctx context.Context, slotKey string, player, hole int, raw string) (*scorecarddomain.Scorecard, error) {
	var evt *outboundEvent
	result, err := withTelemetry(s, ctx, "SetScore", slotKey, func(ctx context.Context) (scorecardResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		sess, err := s.sessionLocked(ctx, slotKey)
		if err != nil {
			return classify[*scorecarddomain.Scorecard](err)
		}
		entry, err := sess.round.SetScore(player, hole, raw)
		if err != nil {
			return classify[*scorecarddomain.Scorecard](err)
		}
		s.saveLocked(ctx, "SetScore", slotKey, sess)

		card := s.view(slotKey, sess)
		evt = &outboundEvent{
			topic: scorecardevents.ScoreUpdatedV1,
			payload: scorecardevents.RoundEventPayloadV1{
				SlotKey:   slotKey,
				CourseID:  sess.course.ID,
				Player:    &player,
				Hole:      &hole,
				Value:     &entry,
				Scorecard: card,
			},
		}
		return results.SuccessResult[*scorecarddomain.Scorecard, error](card), nil
	})
	card, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, evt)
	return card, nil
}

// RenamePlayer changes a player's name. Save failures behave as in SetScore.
func (s *ScorecardService) RenamePlayer(ctx context.Context, slotKey string, player int, name string) (*scorecarddomain.Scorecard, error) {
	var evt *outboundEvent
	result, err := withTelemetry(s, ctx, "RenamePlayer", slotKey, func(ctx context.Context) (scorecardResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		sess, err := s.sessionLocked(ctx, slotKey)
		if err != nil {
			return classify[*scorecarddomain.Scorecard](err)
		}
		if err := sess.round.RenamePlayer(player, name); err != nil {
			return classify[*scorecarddomain.Scorecard](err)
		}
		s.saveLocked(ctx, "RenamePlayer", slotKey, sess)

		card := s.view(slotKey, sess)
		evt = &outboundEvent{
			topic: scorecardevents.PlayerRenamedV1,
			payload: scorecardevents.RoundEventPayloadV1{
				SlotKey:   slotKey,
				CourseID:  sess.course.ID,
				Player:    &player,
				Name:      &name,
				Scorecard: card,
			},
		}
		return results.SuccessResult[*scorecarddomain.Scorecard, error](card), nil
	})
	card, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, evt)
	return card, nil
}

// RetrySave writes the open round again. Unlike mutations, a failure here is
// returned to the caller.
func (s *ScorecardService) RetrySave(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error) {
	result, err := withTelemetry(s, ctx, "RetrySave", slotKey, func(ctx context.Context) (scorecardResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		sess, err := s.sessionLocked(ctx, slotKey)
		if err != nil {
			return classify[*scorecarddomain.Scorecard](err)
		}
		if err := s.saveLocked(ctx, "RetrySave", slotKey, sess); err != nil {
			return scorecardResult{}, err
		}
		return results.SuccessResult[*scorecarddomain.Scorecard, error](s.view(slotKey, sess)), nil
	})
	return unwrap(result, err)
}

// DeleteRound clears a slot and closes its session. Deleting an empty slot is
// a no-op.
func (s *ScorecardService) DeleteRound(ctx context.Context, slotKey string, confirmed bool) error {
	var evt *outboundEvent
	result, err := withTelemetry(s, ctx, "DeleteRound", slotKey, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		if !confirmed {
			return classify[bool](scorecarddomain.ErrConfirmationRequired)
		}
		course, err := s.resolveSlot(slotKey)
		if err != nil {
			return classify[bool](err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		_, open := s.sessions[slotKey]
		exists, err := s.repo.RoundExists(ctx, slotKey)
		if err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		if err := s.repo.DeleteRound(ctx, slotKey); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		delete(s.sessions, slotKey)

		// Clearing an empty slot is a no-op and announces nothing.
		if !exists && !open {
			return results.SuccessResult[bool, error](false), nil
		}
		evt = &outboundEvent{
			topic: scorecardevents.RoundDeletedV1,
			payload: scorecardevents.RoundEventPayloadV1{
				SlotKey:  slotKey,
				CourseID: course.ID,
			},
		}
		return results.SuccessResult[bool, error](true), nil
	})
	if _, err := unwrap(result, err); err != nil {
		return err
	}
	s.publish(ctx, evt)
	return nil
}

// resolveSlot checks that slotKey is one of its course's slot keys.
func (s *ScorecardService) resolveSlot(slotKey string) (coursedomain.Course, error) {
	ref, err := scorecarddomain.ParseSlotKey(slotKey)
	if err != nil {
		return coursedomain.Course{}, err
	}
	course, err := s.courses.Get(ref.CourseID)
	if err != nil {
		return coursedomain.Course{}, err
	}
	if scorecarddomain.SlotKey(course, ref.Slot) != slotKey {
		return coursedomain.Course{}, fmt.Errorf("%w: %q does not belong to course %s", scorecarddomain.ErrInvalidSlotKey, slotKey, course.ID)
	}
	return course, nil
}

// sessionLocked returns the open session for slotKey, loading it from the
// store on first use. s.mu must be held.
func (s *ScorecardService) sessionLocked(ctx context.Context, slotKey string) (*session, error) {
	if sess, ok := s.sessions[slotKey]; ok {
		return sess, nil
	}

	course, err := s.resolveSlot(slotKey)
	if err != nil {
		return nil, err
	}

	sess := &session{course: course}
	round, err := s.repo.LoadRound(ctx, slotKey, course.ID)
	var malformed *scorecarddomain.MalformedSaveDataError
	switch {
	case err == nil:
		sess.round = round
	case errors.As(err, &malformed):
		s.logger.WarnContext(ctx, "Saved round is malformed, starting from a blank card",
			attr.ExtractCorrelationID(ctx),
			attr.SlotKey(slotKey),
			attr.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordMalformedSave(ctx)
		}
		sess.round = scorecarddomain.DefaultRound(course.ID)
		sess.warning = "the saved round could not be read and was reset"
	default:
		return nil, err
	}
	sess.round.CourseID = course.ID

	s.sessions[slotKey] = sess
	return sess, nil
}

// saveLocked writes the whole round. On failure the session keeps its state
// and carries a warning until a later write succeeds. s.mu must be held.
func (s *ScorecardService) saveLocked(ctx context.Context, operation, slotKey string, sess *session) error {
	if err := s.repo.SaveRound(ctx, slotKey, sess.round); err != nil {
		sess.warning = fmt.Sprintf("changes are kept but could not be saved: %v", err)
		s.logger.WarnContext(ctx, "Failed to save round",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			attr.SlotKey(slotKey),
			attr.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordSaveFailure(ctx, operation)
		}
		return err
	}
	sess.warning = ""
	return nil
}

func (s *ScorecardService) view(slotKey string, sess *session) *scorecarddomain.Scorecard {
	card := scorecarddomain.BuildScorecard(slotKey, sess.course, sess.round, sess.warning)
	return &card
}

// publish sends evt on the event bus. Publishing is best effort: the round
// is already saved.
func (s *ScorecardService) publish(ctx context.Context, evt *outboundEvent) {
	if s.publisher == nil || evt == nil {
		return
	}
	evt.payload.OccurredAt = time.Now().UTC()

	data, err := json.Marshal(evt.payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal event", attr.String("topic", evt.topic), attr.Error(err))
		return
	}
	msg := message.NewMessage(uuid.New().String(), data)
	if id := attr.CorrelationID(ctx); id != "" {
		msg.Metadata.Set(attr.CorrelationIDMetadataKey, id)
	}
	msg.Metadata.Set("slot_key", evt.payload.SlotKey)

	if err := s.publisher.Publish(evt.topic, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish scorecard event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", evt.topic),
			attr.SlotKey(evt.payload.SlotKey),
			attr.Error(err),
		)
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// domainFailures are reported as failure results rather than errors.
var domainFailures = []error{
	scorecarddomain.ErrInvalidSlotKey,
	scorecarddomain.ErrCourseNotFound,
	scorecarddomain.ErrSaveNotFound,
	scorecarddomain.ErrNoPlayers,
	scorecarddomain.ErrTooManyPlayers,
	scorecarddomain.ErrSlotsExhausted,
	scorecarddomain.ErrPlayerOutOfRange,
	scorecarddomain.ErrHoleOutOfRange,
	scorecarddomain.ErrConfirmationRequired,
}

// classify turns a domain error into a failure result and passes anything
// else through as an infrastructure error.
func classify[S any](err error) (results.OperationResult[S, error], error) {
	for _, target := range domainFailures {
		if errors.Is(err, target) {
			return results.FailureResult[S, error](err), nil
		}
	}
	return results.OperationResult[S, error]{}, err
}

// unwrap converts a telemetry result back into the (value, error) pair
// returned to callers.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if !result.IsSuccess() {
		return zero, errors.New("operation returned no result")
	}
	return *result.Success, nil
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScorecardService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}
