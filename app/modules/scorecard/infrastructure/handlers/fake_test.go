package scorecardhandlers

import (
	"context"

	scorecardservice "github.com/Black-And-White-Club/three-under/app/modules/scorecard/application"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
)

type FakeScorecardService struct {
	trace []string

	ListSlotsFunc     func(ctx context.Context, courseID string) ([]scorecarddomain.Slot, error)
	StartNewRoundFunc func(ctx context.Context, courseID string, playerNames []string) (*scorecarddomain.Scorecard, error)
	ContinueRoundFunc func(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error)
	SetScoreFunc      func(ctx context.Context, slotKey string, player, hole int, raw string) (*scorecarddomain.Scorecard, error)
	RenamePlayerFunc  func(ctx context.Context, slotKey string, player int, name string) (*scorecarddomain.Scorecard, error)
	RetrySaveFunc     func(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error)
	DeleteRoundFunc   func(ctx context.Context, slotKey string, confirmed bool) error
}

func (f *FakeScorecardService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScorecardService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScorecardService) ListSlots(ctx context.Context, courseID string) ([]scorecarddomain.Slot, error) {
	f.record("ListSlots")
	if f.ListSlotsFunc != nil {
		return f.ListSlotsFunc(ctx, courseID)
	}
	return nil, nil
}

func (f *FakeScorecardService) StartNewRound(ctx context.Context, courseID string, playerNames []string) (*scorecarddomain.Scorecard, error) {
	f.record("StartNewRound")
	if f.StartNewRoundFunc != nil {
		return f.StartNewRoundFunc(ctx, courseID, playerNames)
	}
	return &scorecarddomain.Scorecard{}, nil
}

func (f *FakeScorecardService) ContinueRound(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error) {
	f.record("ContinueRound")
	if f.ContinueRoundFunc != nil {
		return f.ContinueRoundFunc(ctx, slotKey)
	}
	return &scorecarddomain.Scorecard{SlotKey: slotKey}, nil
}

func (f *FakeScorecardService) SetScore(ctx context.Context, slotKey string, player, hole int, raw string) (*scorecarddomain.Scorecard, error) {
	f.record("SetScore")
	if f.SetScoreFunc != nil {
		return f.SetScoreFunc(ctx, slotKey, player, hole, raw)
	}
	return &scorecarddomain.Scorecard{SlotKey: slotKey}, nil
}

func (f *FakeScorecardService) RenamePlayer(ctx context.Context, slotKey string, player int, name string) (*scorecarddomain.Scorecard, error) {
	f.record("RenamePlayer")
	if f.RenamePlayerFunc != nil {
		return f.RenamePlayerFunc(ctx, slotKey, player, name)
	}
	return &scorecarddomain.Scorecard{SlotKey: slotKey}, nil
}

func (f *FakeScorecardService) RetrySave(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error) {
	f.record("RetrySave")
	if f.RetrySaveFunc != nil {
		return f.RetrySaveFunc(ctx, slotKey)
	}
	return &scorecarddomain.Scorecard{SlotKey: slotKey}, nil
}

func (f *FakeScorecardService) DeleteRound(ctx context.Context, slotKey string, confirmed bool) error {
	f.record("DeleteRound")
	if f.DeleteRoundFunc != nil {
		return f.DeleteRoundFunc(ctx, slotKey, confirmed)
	}
	return nil
}

var _ scorecardservice.Service = (*FakeScorecardService)(nil)
