package exporthandlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	exportservice "github.com/Black-And-White-Club/three-under/app/modules/export/application"
	scorecardhandlers "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandlers serves spreadsheet and chart downloads of saved rounds.
type ExportHandlers struct {
	service exportservice.Service
	logger  *slog.Logger
}

// NewExportHandlers creates a new ExportHandlers instance.
func NewExportHandlers(service exportservice.Service, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{service: service, logger: logger}
}

// Routes registers the export routes on r.
func (h *ExportHandlers) Routes(r chi.Router) {
	r.Get("/api/rounds/{slotKey}/export.xlsx", h.HandleXLSX)
	r.Get("/api/rounds/{slotKey}/chart.png", h.HandleChart)
}

func (h *ExportHandlers) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	slotKey := chi.URLParam(r, "slotKey")
	h.serve(w, r, h.service.ExportXLSX, xlsxContentType, slotKey+".xlsx")
}

func (h *ExportHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.ExportChart, "image/png", "")
}

func (h *ExportHandlers) serve(
	w http.ResponseWriter,
	r *http.Request,
	render func(ctx context.Context, slotKey string) ([]byte, error),
	contentType, attachment string,
) {
	data, err := render(r.Context(), chi.URLParam(r, "slotKey"))
	if err != nil {
		scorecardhandlers.WriteServiceError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if attachment != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+attachment+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
