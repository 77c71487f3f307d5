package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/handler/http/response"
)

type FaceHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	BatchVerify(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
}

type faceHandlerImpl struct {
	faceService face.Service
}

func NewFaceHandler(faceService face.Service) FaceHandler {
	return &faceHandlerImpl{faceService: faceService}
}

// Register implements FaceHandler.
func (h *faceHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req face.RegisterFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.faceService.RegisterFace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Face registered successfully", result)
}

// Update implements FaceHandler.
func (h *faceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req face.UpdateFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.faceService.UpdateFace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face updated successfully", result)
}

// Delete implements FaceHandler.
func (h *faceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.faceService.DeleteFace(r.Context(), employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face data deleted successfully", nil)
}

// Verify implements FaceHandler.
func (h *faceHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	var req face.VerifyFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.faceService.VerifyFace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// BatchVerify implements FaceHandler.
func (h *faceHandlerImpl) BatchVerify(w http.ResponseWriter, r *http.Request) {
	var req face.BatchVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.faceService.BatchVerify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Statistics implements FaceHandler.
func (h *faceHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.faceService.GetStatistics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
