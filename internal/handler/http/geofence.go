package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/handler/http/response"
)

type GeofenceHandler interface {
	CreateZone(w http.ResponseWriter, r *http.Request)
	UpdateZone(w http.ResponseWriter, r *http.Request)
	DeleteZone(w http.ResponseWriter, r *http.Request)
	ListZones(w http.ResponseWriter, r *http.Request)
}

type geofenceHandlerImpl struct {
	geofenceService geofence.Service
}

func NewGeofenceHandler(geofenceService geofence.Service) GeofenceHandler {
	return &geofenceHandlerImpl{geofenceService: geofenceService}
}

// CreateZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req geofence.CreateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.geofenceService.CreateZone(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Zone created successfully", result)
}

// UpdateZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) UpdateZone(w http.ResponseWriter, r *http.Request) {
	var req geofence.UpdateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "zoneID")

	result, err := h.geofenceService.UpdateZone(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone updated successfully", result)
}

// DeleteZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) DeleteZone(w http.ResponseWriter, r *http.Request) {
	if err := h.geofenceService.DeleteZone(r.Context(), chi.URLParam(r, "zoneID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone deleted successfully", nil)
}

// ListZones implements GeofenceHandler.
func (h *geofenceHandlerImpl) ListZones(w http.ResponseWriter, r *http.Request) {
	result, err := h.geofenceService.ListZones(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
