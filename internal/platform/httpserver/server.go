package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	slotservice "criadores/contexts/campaign-ops/slot-service"
	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
	slothttp "criadores/contexts/campaign-ops/slot-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "criadores/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	slots  slotservice.Module
}

func New(slots slotservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		slots:  slots,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the routing table for tests driving the server through
// httptest without binding a socket.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/v1/slots", s.handleGetSlots)
	s.mux.HandleFunc("POST /api/v1/assignments/add", s.handleAddCreator)
	s.mux.HandleFunc("DELETE /api/v1/assignments/remove", s.handleRemoveCreator)
	s.mux.HandleFunc("PUT /api/v1/assignments/replace", s.handleReplaceCreator)
	s.mux.HandleFunc("POST /api/v1/stage/transition", s.handleTransitionStage)
	s.mux.HandleFunc("POST /api/v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}/history", s.handleCampaignHistory)
	s.mux.HandleFunc("GET /api/v1/integrity/validate", s.handleValidateIntegrity)
	s.mux.HandleFunc("POST /api/v1/integrity/fix", s.handleFixIntegrity)
}

func (s *Server) handleGetSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	business := query.Get("business")
	if business == "" {
		writeSlotError(w, http.StatusBadRequest, "missing_business", "business query parameter is required")
		return
	}

	resp, err := s.slots.Handler.GetSlotsHandler(r.Context(), business, query.Get("month"))
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddCreator(w http.ResponseWriter, r *http.Request) {
	var req slothttp.AddCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSlotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.slots.Handler.AddCreatorHandler(r.Context(), req)
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveCreator(w http.ResponseWriter, r *http.Request) {
	var req slothttp.RemoveCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSlotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.slots.Handler.RemoveCreatorHandler(r.Context(), req)
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReplaceCreator(w http.ResponseWriter, r *http.Request) {
	var req slothttp.ReplaceCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSlotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.slots.Handler.ReplaceCreatorHandler(r.Context(), req)
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransitionStage(w http.ResponseWriter, r *http.Request) {
	var req slothttp.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSlotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.slots.Handler.TransitionStageHandler(r.Context(), req)
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req slothttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSlotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.slots.Handler.CreateCampaignHandler(r.Context(), req)
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCampaignHistory(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaign_id")

	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil || parsed < 0 {
			writeSlotError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	resp, err := s.slots.Handler.HistoryHandler(r.Context(), campaignID, limit)
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidateIntegrity(w http.ResponseWriter, r *http.Request) {
	resp, err := s.slots.Handler.ValidateIntegrityHandler(r.Context())
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFixIntegrity(w http.ResponseWriter, r *http.Request) {
	var req slothttp.FixIntegrityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSlotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.slots.Handler.FixIntegrityHandler(r.Context(), req)
	if err != nil {
		writeSlotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSlotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrBusinessNotFound):
		writeSlotError(w, http.StatusNotFound, "business_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrCampaignNotFound):
		writeSlotError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrCreatorNotFound):
		writeSlotError(w, http.StatusNotFound, "creator_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrAssignmentNotFound):
		writeSlotError(w, http.StatusNotFound, "assignment_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrCreatorAlreadyAssigned):
		writeSlotError(w, http.StatusConflict, "creator_already_assigned", err.Error())
	case errors.Is(err, domainerrors.ErrCampaignAlreadyExists):
		writeSlotError(w, http.StatusConflict, "campaign_already_exists", err.Error())
	case errors.Is(err, domainerrors.ErrStaleStageTransition):
		writeSlotError(w, http.StatusConflict, "stale_stage_transition", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidStage):
		writeSlotError(w, http.StatusUnprocessableEntity, "invalid_stage", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidMonthToken):
		writeSlotError(w, http.StatusBadRequest, "invalid_month_token", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput):
		writeSlotError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domainerrors.ErrCountMismatch):
		writeSlotError(w, http.StatusInternalServerError, "count_mismatch", "assigned count diverged from the assignment set; run POST /api/v1/integrity/fix")
	default:
		writeSlotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSlotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, slothttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
