// Package exportservice renders a saved round as a spreadsheet or chart.
package exportservice

import (
	"context"
	"log/slog"
	"time"

	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
	"github.com/Black-And-White-Club/three-under/internal/observability/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ExportService"

// RoundReader opens a saved round.
type RoundReader interface {
	ContinueRound(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error)
}

// Service renders saved rounds.
type Service interface {
	ExportXLSX(ctx context.Context, slotKey string) ([]byte, error)
	ExportChart(ctx context.Context, slotKey string) ([]byte, error)
}

// ExportService implements Service.
type ExportService struct {
	rounds  RoundReader
	palette Palette
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

// NewExportService creates a new ExportService.
func NewExportService(rounds RoundReader, logger *slog.Logger, metrics metrics.OperationMetrics, tracer trace.Tracer) *ExportService {
	return &ExportService{
		rounds:  rounds,
		palette: DefaultPalette,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

func (s *ExportService) ExportXLSX(ctx context.Context, slotKey string) ([]byte, error) {
	return s.render(ctx, "ExportXLSX", slotKey, RenderXLSX)
}

func (s *ExportService) ExportChart(ctx context.Context, slotKey string) ([]byte, error) {
	return s.render(ctx, "ExportChart", slotKey, func(card scorecarddomain.Scorecard) ([]byte, error) {
		return RenderChart(card, s.palette)
	})
}

func (s *ExportService) render(ctx context.Context, op, slotKey string, fn func(scorecarddomain.Scorecard) ([]byte, error)) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("operation", op),
		attribute.String("slot_key", slotKey),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, op, serviceName)
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, op, serviceName, time.Since(start))
	}()

	card, err := s.rounds.ContinueRound(ctx, slotKey)
	if err == nil {
		var data []byte
		data, err = fn(*card)
		if err == nil {
			s.metrics.RecordOperationSuccess(ctx, op, serviceName)
			s.logger.InfoContext(ctx, "Export rendered",
				attr.ExtractCorrelationID(ctx),
				attr.String("operation", op),
				attr.SlotKey(slotKey),
				attr.Int("bytes", len(data)),
			)
			return data, nil
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.RecordOperationFailure(ctx, op, serviceName)
	s.logger.WarnContext(ctx, "Export failed",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", op),
		attr.SlotKey(slotKey),
		attr.Error(err),
	)
	return nil, err
}
