package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"hotelier/internal/catalog/service"
	"hotelier/pkg/auth"
	"hotelier/pkg/httputil"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

// resourceHandler adapts one catalog resource to HTTP. The label feeds the
// response messages ("Hotel category created successfully" and so on).
type resourceHandler[T any] struct {
	resource *service.Resource[T]
	label    string
	log      *logger.Logger
}

func (h *resourceHandler[T]) create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var record T
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "resource", h.label, "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.resource.Create(r.Context(), &record); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "resource", h.label, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, map[string]any{
		"message": h.label + " created successfully",
		"data":    record,
	}); err != nil {
		h.log.Error("failed to write created response", "resource", h.label, "operation", "WriteCreated", "error", err)
	}
}

func (h *resourceHandler[T]) getAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, err := h.resource.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "resource", h.label, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, records); err != nil {
		h.log.Error("failed to write success response", "resource", h.label, "operation", "WriteSuccess", "error", err)
	}
}

func (h *resourceHandler[T]) update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var patch json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "resource", h.label, "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	record, err := h.resource.Update(r.Context(), id, patch)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "resource", h.label, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"message": h.label + " updated successfully",
		"data":    record,
	}); err != nil {
		h.log.Error("failed to write success response", "resource", h.label, "operation", "WriteSuccess", "error", err)
	}
}

func (h *resourceHandler[T]) delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.resource.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "resource", h.label, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, h.label+" deleted successfully"); err != nil {
		h.log.Error("failed to write message response", "resource", h.label, "operation", "WriteMessage", "error", err)
	}
}

type CatalogHandler struct {
	hotelCategories *resourceHandler[model.HotelCategory]
	roomTypes       *resourceHandler[model.RoomType]
	services        *resourceHandler[model.Service]
	portfolios      *resourceHandler[model.Portfolio]
}

func NewCatalogHandler(svc *service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		hotelCategories: &resourceHandler[model.HotelCategory]{resource: svc.HotelCategories, label: "Hotel category", log: log},
		roomTypes:       &resourceHandler[model.RoomType]{resource: svc.RoomTypes, label: "Room type", log: log},
		services:        &resourceHandler[model.Service]{resource: svc.Services, label: "Service", log: log},
		portfolios:      &resourceHandler[model.Portfolio]{resource: svc.Portfolios, label: "Portfolio", log: log},
	}
}

// List endpoints stay open for the public booking front-end; mutations
// require a token.
func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/api/hotelCategory", guard.Protect(h.hotelCategories.create))
	router.GET("/api/hotelCategory", h.hotelCategories.getAll)
	router.PUT("/api/hotelCategory/:id", guard.Protect(h.hotelCategories.update))
	router.DELETE("/api/hotelCategory/:id", guard.Protect(h.hotelCategories.delete))

	router.POST("/api/hotelRoom", guard.Protect(h.roomTypes.create))
	router.GET("/api/hotelRoom", h.roomTypes.getAll)
	router.PUT("/api/hotelRoom/:id", guard.Protect(h.roomTypes.update))
	router.DELETE("/api/hotelRoom/:id", guard.Protect(h.roomTypes.delete))

	router.POST("/api/service", guard.Protect(h.services.create))
	router.GET("/api/services", h.services.getAll)
	router.PUT("/api/service/:id", guard.Protect(h.services.update))
	router.DELETE("/api/service/:id", guard.Protect(h.services.delete))

	router.POST("/api/portfolio", guard.Protect(h.portfolios.create))
	router.GET("/api/portfolios", h.portfolios.getAll)
	router.PUT("/api/portfolio/:id", guard.Protect(h.portfolios.update))
	router.DELETE("/api/portfolio/:id", guard.Protect(h.portfolios.delete))
}
