package scorecardhandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	scorecardservice "github.com/Black-And-White-Club/three-under/app/modules/scorecard/application"
	"github.com/Black-And-White-Club/three-under/internal/httpapi"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScorecardHandlers serves the save slot lifecycle and scorecard engine over HTTP.
type ScorecardHandlers struct {
	service scorecardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewScorecardHandlers creates a new ScorecardHandlers instance.
func NewScorecardHandlers(service scorecardservice.Service, logger *slog.Logger, tracer trace.Tracer) *ScorecardHandlers {
	return &ScorecardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes registers the scorecard routes on r.
func (h *ScorecardHandlers) Routes(r chi.Router) {
	r.Get("/api/courses/{courseID}/slots", h.HandleListSlots)
	r.Post("/api/courses/{courseID}/rounds", h.HandleStartNewRound)

	r.Get("/api/rounds/{slotKey}", h.HandleContinueRound)
	r.Delete("/api/rounds/{slotKey}", h.HandleDeleteRound)
	r.Post("/api/rounds/{slotKey}/save", h.HandleRetrySave)
	r.Put("/api/rounds/{slotKey}/players/{player}", h.HandleRenamePlayer)
	r.Put("/api/rounds/{slotKey}/players/{player}/holes/{hole}", h.HandleSetScore)
}

type startRoundRequest struct {
	Players []string `json:"players"`
}

type setScoreRequest struct {
	Value string `json:"value"`
}

type renamePlayerRequest struct {
	Name string `json:"name"`
}

func (h *ScorecardHandlers) HandleListSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleListSlots")
	defer span.End()

	slots, err := h.service.ListSlots(ctx, chi.URLParam(r, "courseID"))
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (h *ScorecardHandlers) HandleStartNewRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleStartNewRound")
	defer span.End()

	var req startRoundRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	card, err := h.service.StartNewRound(ctx, chi.URLParam(r, "courseID"), req.Players)
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	span.SetAttributes(attribute.String("slot_key", card.SlotKey))
	w.Header().Set("Location", "/api/rounds/"+card.SlotKey)
	httpapi.WriteJSON(w, http.StatusCreated, card)
}

func (h *ScorecardHandlers) HandleContinueRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleContinueRound")
	defer span.End()

	card, err := h.service.ContinueRound(ctx, chi.URLParam(r, "slotKey"))
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, card)
}

func (h *ScorecardHandlers) HandleSetScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleSetScore")
	defer span.End()

	player, ok := intParam(w, r, "player")
	if !ok {
		return
	}
	hole, ok := intParam(w, r, "hole")
	if !ok {
		return
	}
	var req setScoreRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	card, err := h.service.SetScore(ctx, chi.URLParam(r, "slotKey"), player, hole, req.Value)
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, card)
}

func (h *ScorecardHandlers) HandleRenamePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleRenamePlayer")
	defer span.End()

	player, ok := intParam(w, r, "player")
	if !ok {
		return
	}
	var req renamePlayerRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	card, err := h.service.RenamePlayer(ctx, chi.URLParam(r, "slotKey"), player, req.Name)
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, card)
}

func (h *ScorecardHandlers) HandleRetrySave(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleRetrySave")
	defer span.End()

	card, err := h.service.RetrySave(ctx, chi.URLParam(r, "slotKey"))
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, card)
}

func (h *ScorecardHandlers) HandleDeleteRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScorecardHandlers.HandleDeleteRound")
	defer span.End()

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := h.service.DeleteRound(ctx, chi.URLParam(r, "slotKey"), confirmed); err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// intParam parses a non-negative integer path parameter, writing a 400 on failure.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_request", name+" must be an integer index")
		return 0, false
	}
	return v, true
}
