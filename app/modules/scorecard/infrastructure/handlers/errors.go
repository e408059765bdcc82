package scorecardhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/Black-And-White-Club/three-under/internal/httpapi"
	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{scorecarddomain.ErrNoPlayers, http.StatusBadRequest, "no_players"},
	{scorecarddomain.ErrTooManyPlayers, http.StatusBadRequest, "too_many_players"},
	{scorecarddomain.ErrPlayerOutOfRange, http.StatusBadRequest, "player_out_of_range"},
	{scorecarddomain.ErrHoleOutOfRange, http.StatusBadRequest, "hole_out_of_range"},
	{scorecarddomain.ErrInvalidSlotKey, http.StatusBadRequest, "invalid_slot_key"},
	{scorecarddomain.ErrCourseNotFound, http.StatusNotFound, "course_not_found"},
	{scorecarddomain.ErrSaveNotFound, http.StatusNotFound, "save_not_found"},
	{scorecarddomain.ErrSlotsExhausted, http.StatusConflict, "slots_exhausted"},
	{scorecarddomain.ErrConfirmationRequired, http.StatusPreconditionFailed, "confirmation_required"},
	{scorecarddomain.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"},
}

// StatusFor maps a service error to an HTTP status and error code.
func StatusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// WriteServiceError writes err as an error body. Server-side errors are
// logged; client errors are not.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Scorecard request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		if status == http.StatusInternalServerError {
			message = "internal error"
		}
	}
	httpapi.WriteError(w, status, code, message)
}
