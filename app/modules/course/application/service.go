package courseservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
	"github.com/Black-And-White-Club/three-under/internal/observability/metrics"
	"github.com/Black-And-White-Club/three-under/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "CourseService"

// CourseService implements the Service interface.
type CourseService struct {
	catalog Catalog
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	catalog Catalog,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *CourseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseService{
		catalog: catalog,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// ListCourses returns every course summary.
func (s *CourseService) ListCourses(ctx context.Context) ([]coursedomain.Summary, error) {
	result, err := withTelemetry(s, ctx, "ListCourses", "", func(ctx context.Context) (results.OperationResult[[]coursedomain.Summary, error], error) {
		courses := s.catalog.List()
		out := make([]coursedomain.Summary, 0, len(courses))
		for _, c := range courses {
			out = append(out, c.Summarize())
		}
		return results.SuccessResult[[]coursedomain.Summary, error](out), nil
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

// GetCourse looks a course up by id.
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*CourseDetail, error) {
	result, err := withTelemetry(s, ctx, "GetCourse", courseID, func(ctx context.Context) (results.OperationResult[*CourseDetail, error], error) {
		course, err := s.catalog.Get(courseID)
		if err != nil {
			if errors.Is(err, coursedomain.ErrCourseNotFound) {
				return results.FailureResult[*CourseDetail, error](err), nil
			}
			return results.OperationResult[*CourseDetail, error]{}, fmt.Errorf("failed to get course: %w", err)
		}
		return results.SuccessResult[*CourseDetail, error](&CourseDetail{
			Course:        course,
			Initials:      course.Initials(),
			ParTotals:     course.ParTotals(),
			YardageTotals: course.YardageTotals(),
		}), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a catalog lookup with a span, metrics and panic recovery.
func withTelemetry[S any, F any](
	s *CourseService,
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

	if result.IsFailure() {
		s.logger.DebugContext(ctx, "Course lookup failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.CourseID(identifier),
		)
	}
	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return result, nil
}
