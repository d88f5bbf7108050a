package resources

import (
	"errors"
	"net/http"

	"tablebook/internal/domain"
	"tablebook/internal/pkg/response"
	"tablebook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the address and payment-method collections. All
// routes require an authenticated owner.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for path, kind := range map[string]domain.ResourceKind{
		"/addresses":       domain.ResourceAddress,
		"/payment-methods": domain.ResourcePayment,
	} {
		g := rg.Group(path)
		g.GET("", h.list(kind))
		g.POST("", h.add(kind))
		g.GET("/default", h.getDefault(kind))
		g.GET("/:id", h.get(kind))
		g.PUT("/:id", h.update(kind))
		g.DELETE("/:id", h.remove(kind))
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString("owner_id")
}

// fieldsValid checks the kind-specific field rules of whichever payload is
// present. Payload presence itself is the service's concern.
func fieldsValid(c *gin.Context, addr *domain.AddressFields, pay *domain.PaymentFields) bool {
	var fields map[string]string
	if addr != nil {
		fields = validator.Validate(addr)
	} else if pay != nil {
		fields = validator.Validate(pay)
	}
	if fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid resource payload", fields)
		return false
	}
	return true
}

func (h *Handler) list(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.service.List(c.Request.Context(), ownerID(c), kind)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list resources")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"items": items})
	}
}

func (h *Handler) add(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		if !fieldsValid(c, req.Address, req.Payment) {
			return
		}

		id, err := h.service.Add(c.Request.Context(), ownerID(c), kind, req)
		if err != nil {
			h.writeError(c, err, "Failed to add resource")
			return
		}
		response.Success(c, http.StatusCreated, gin.H{"id": id})
	}
}

func (h *Handler) get(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := h.service.Get(c.Request.Context(), ownerID(c), kind, c.Param("id"))
		if err != nil {
			h.writeError(c, err, "Failed to get resource")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"item": item})
	}
}

func (h *Handler) getDefault(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := h.service.GetDefault(c.Request.Context(), ownerID(c), kind)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get default resource")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"item": item})
	}
}

func (h *Handler) update(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		if !fieldsValid(c, req.Address, req.Payment) {
			return
		}

		if err := h.service.Update(c.Request.Context(), ownerID(c), kind, c.Param("id"), req); err != nil {
			h.writeError(c, err, "Failed to update resource")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
	}
}

func (h *Handler) remove(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.service.Remove(c.Request.Context(), ownerID(c), kind, c.Param("id")); err != nil {
			h.writeError(c, err, "Failed to remove resource")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
	}
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid resource payload")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
