package scorecardservice

import (
	"context"
	"fmt"
	"sync"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ------------------------
// Fake Round Repo
// ------------------------

type FakeRoundRepo struct {
	trace []string

	LoadRoundFunc   func(ctx context.Context, slotKey, courseID string) (scorecarddomain.Round, error)
	SaveRoundFunc   func(ctx context.Context, slotKey string, round scorecarddomain.Round) error
	DeleteRoundFunc func(ctx context.Context, slotKey string) error
	RoundExistsFunc func(ctx context.Context, slotKey string) (bool, error)
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{trace: []string{}}
}

func (f *FakeRoundRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepo) LoadRound(ctx context.Context, slotKey, courseID string) (scorecarddomain.Round, error) {
	f.record("LoadRound")
	if f.LoadRoundFunc != nil {
		return f.LoadRoundFunc(ctx, slotKey, courseID)
	}
	return scorecarddomain.Round{}, scorecarddomain.ErrSaveNotFound
}

func (f *FakeRoundRepo) SaveRound(ctx context.Context, slotKey string, round scorecarddomain.Round) error {
	f.record("SaveRound")
	if f.SaveRoundFunc != nil {
		return f.SaveRoundFunc(ctx, slotKey, round)
	}
	return nil
}

func (f *FakeRoundRepo) DeleteRound(ctx context.Context, slotKey string) error {
	f.record("DeleteRound")
	if f.DeleteRoundFunc != nil {
		return f.DeleteRoundFunc(ctx, slotKey)
	}
	return nil
}

func (f *FakeRoundRepo) RoundExists(ctx context.Context, slotKey string) (bool, error) {
	f.record("RoundExists")
	if f.RoundExistsFunc != nil {
		return f.RoundExistsFunc(ctx, slotKey)
	}
	return false, nil
}

func (f *FakeRoundRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ scorecarddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Course Lookup
// ------------------------

type FakeCourses map[string]coursedomain.Course

func (f FakeCourses) Get(id string) (coursedomain.Course, error) {
	c, ok := f[id]
	if !ok {
		return coursedomain.Course{}, fmt.Errorf("%w: %s", coursedomain.ErrCourseNotFound, id)
	}
	return c, nil
}

var _ CourseLookup = FakeCourses(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu        sync.Mutex
	Published map[string][]*message.Message
	Err       error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{Published: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Published[topic] = append(f.Published[topic], msgs...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Published[topic])
}

var _ message.Publisher = (*FakePublisher)(nil)
