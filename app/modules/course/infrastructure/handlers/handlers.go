package coursehandlers

import (
	"errors"
	"log/slog"
	"net/http"

	courseservice "github.com/Black-And-White-Club/three-under/app/modules/course/application"
	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	"github.com/Black-And-White-Club/three-under/internal/httpapi"
	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// CourseHandlers serves the course catalog over HTTP.
type CourseHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCourseHandlers creates a new CourseHandlers instance.
func NewCourseHandlers(service courseservice.Service, logger *slog.Logger, tracer trace.Tracer) *CourseHandlers {
	return &CourseHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes registers the catalog routes on r.
func (h *CourseHandlers) Routes(r chi.Router) {
	r.Get("/api/courses", h.HandleListCourses)
	r.Get("/api/courses/{courseID}", h.HandleGetCourse)
}

// HandleListCourses returns every course summary.
func (h *CourseHandlers) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleListCourses")
	defer span.End()

	courses, err := h.service.ListCourses(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list courses", attr.Error(err))
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to list courses")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

// HandleGetCourse returns a single course with its totals.
func (h *CourseHandlers) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleGetCourse")
	defer span.End()

	courseID := chi.URLParam(r, "courseID")
	course, err := h.service.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, coursedomain.ErrCourseNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "course_not_found", err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get course", attr.CourseID(courseID), attr.Error(err))
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to get course")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, course)
}
