package reservations

import (
	"errors"
	"net/http"
	"time"

	"tablebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the owner-scoped reservation endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/reservations")
	g.POST("", h.create)
	g.GET("", h.listOwn)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.POST("/:id/confirm", h.confirm)
	g.POST("/:id/cancel", h.cancel)
}

// RegisterPublicRoutes mounts the availability check, which needs no session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations/availability", h.checkAvailability)
}

func ownerID(c *gin.Context) string {
	return c.GetString("owner_id")
}

func (h *Handler) create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	id, err := h.service.Create(c.Request.Context(), ownerID(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id, "status": "pending"})
}

func (h *Handler) listOwn(c *gin.Context) {
	items, err := h.service.GetByOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		h.writeError(c, err, "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": items})
}

func (h *Handler) get(c *gin.Context) {
	r, err := h.service.GetByID(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to get reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), ownerID(c), c.Param("id"), req); err != nil {
		h.writeError(c, err, "Failed to update reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) confirm(c *gin.Context) {
	if err := h.service.Confirm(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to confirm reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": "confirmed"})
}

func (h *Handler) cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": "canceled"})
}

func (h *Handler) checkAvailability(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), date, c.Query("time"))
	if err != nil {
		h.writeError(c, err, "Failed to check availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": available})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation data")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "NOT_AVAILABLE", "Slot is fully booked")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Reservation id conflict, retry the request")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
