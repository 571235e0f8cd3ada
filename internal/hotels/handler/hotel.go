package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"hotelier/internal/hotels/service"
	"hotelier/pkg/auth"
	"hotelier/pkg/httputil"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type HotelHandler struct {
	service service.HotelService
	log     *logger.Logger
}

func NewHotelHandler(service service.HotelService, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log,
	}
}

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var hotel model.Hotel
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &hotel); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"message": "Hotel created successfully",
		"hotel":   hotel,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hotels, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, hotels); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var patch json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	hotel, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"message": "Hotel updated successfully",
		"hotel":   hotel,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Hotel deleted successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

type appendRoomBookingRequest struct {
	HotelID        int               `json:"hotelID"`
	CategoryName   string            `json:"roomCategoryName"`
	RoomName       string            `json:"roomNumberName"`
	Booking        model.RoomBooking `json:"booking"`
	NewBookedDates []string          `json:"newBookedDates"`
}

func (h *HotelHandler) AppendRoomBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req appendRoomBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AppendRoomBooking", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	hotel, err := h.service.AppendRoomBooking(r.Context(), req.HotelID, req.CategoryName, req.RoomName, req.Booking, req.NewBookedDates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AppendRoomBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"message": "Booking added to room successfully",
		"hotel":   hotel,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "AppendRoomBooking", "operation", "WriteSuccess", "error", err)
	}
}

type removeRoomBookingsRequest struct {
	HotelID       int      `json:"hotelID"`
	CategoryName  string   `json:"roomCategoryName"`
	RoomName      string   `json:"roomNumberName"`
	DatesToRemove []string `json:"datesToRemove"`
}

func (h *HotelHandler) RemoveRoomBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req removeRoomBookingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "RemoveRoomBookings", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	hotel, err := h.service.RemoveRoomBookings(r.Context(), req.HotelID, req.CategoryName, req.RoomName, req.DatesToRemove)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RemoveRoomBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"message": "Bookings removed successfully",
		"hotel":   hotel,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "RemoveRoomBookings", "operation", "WriteSuccess", "error", err)
	}
}

type updateRoomStatusesRequest struct {
	HotelID      int                      `json:"hotelID"`
	CategoryName string                   `json:"roomCategoryName"`
	Updates      []model.RoomStatusUpdate `json:"roomNumbers"`
}

func (h *HotelHandler) UpdateRoomStatuses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req updateRoomStatusesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateRoomStatuses", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	hotel, err := h.service.UpdateRoomStatuses(r.Context(), req.HotelID, req.CategoryName, req.Updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateRoomStatuses", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"message": "Room statuses updated successfully",
		"hotel":   hotel,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateRoomStatuses", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/api/hotel", guard.Protect(h.Create))
	router.GET("/api/hotel", guard.Protect(h.GetAll))
	router.PUT("/api/hotel/id/:id", guard.Protect(h.Update))
	router.DELETE("/api/hotel/id/:id", guard.Protect(h.Delete))
	router.PUT("/api/hotel/room/updateBooking", guard.Protect(h.AppendRoomBooking))
	router.PUT("/api/hotel/room/updateStatus", guard.Protect(h.UpdateRoomStatuses))

	// Left unprotected on purpose: the admin dashboard calls this without a
	// token. Flagged in DESIGN.md rather than silently hardened.
	router.DELETE("/api/bookings/delete", h.RemoveRoomBookings)
}
