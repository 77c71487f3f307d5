package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
	"github.com/omanjaya/attendancedev-sub009/internal/handler/http/response"
)

type LivenessHandler interface {
	StartSession(w http.ResponseWriter, r *http.Request)
	SubmitSignal(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	Abort(w http.ResponseWriter, r *http.Request)
	Instructions(w http.ResponseWriter, r *http.Request)
}

type livenessHandlerImpl struct {
	livenessService liveness.Service
}

func NewLivenessHandler(livenessService liveness.Service) LivenessHandler {
	return &livenessHandlerImpl{livenessService: livenessService}
}

// StartSession implements LivenessHandler.
func (h *livenessHandlerImpl) StartSession(w http.ResponseWriter, r *http.Request) {
	var req liveness.StartSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.livenessService.StartSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Liveness session started", result)
}

// SubmitSignal implements LivenessHandler.
func (h *livenessHandlerImpl) SubmitSignal(w http.ResponseWriter, r *http.Request) {
	var signal liveness.Signal
	if err := json.NewDecoder(r.Body).Decode(&signal); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.livenessService.SubmitSignal(r.Context(), chi.URLParam(r, "sessionID"), signal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSession implements LivenessHandler.
func (h *livenessHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.livenessService.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Abort implements LivenessHandler.
func (h *livenessHandlerImpl) Abort(w http.ResponseWriter, r *http.Request) {
	result, err := h.livenessService.Abort(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Liveness session aborted", result)
}

// Instructions implements LivenessHandler.
func (h *livenessHandlerImpl) Instructions(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.livenessService.Instructions())
}
