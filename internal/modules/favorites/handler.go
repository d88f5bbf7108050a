package favorites

import (
	"errors"
	"net/http"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/pkg/ids"
	"tablebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the favorites endpoints. The group is expected to
// carry optional authentication: anonymous callers get local-cache behavior.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/favorites")
	g.GET("/restaurants", h.listRestaurants)
	g.POST("/restaurants", h.addRestaurant)
	g.DELETE("/restaurants/:id", h.removeRestaurant)

	g.GET("/menu-items", h.listMenuItems)
	g.POST("/menu-items", h.addMenuItem)
	g.DELETE("/menu-items/:itemId", h.removeMenuItem)
	g.POST("/menu-items/:itemId/toggle", h.toggleMenuItem)

	g.GET("/addresses", h.listAddresses)
	g.POST("/addresses", h.saveAddress)
	g.DELETE("/addresses/:id", h.removeAddress)
	g.PUT("/addresses/:id/favorite", h.markAddressFavorite)
}

func session(c *gin.Context) domain.Session {
	return domain.Session{
		OwnerID:       c.GetString("owner_id"),
		Authenticated: c.GetBool("authenticated"),
	}
}

func (h *Handler) listRestaurants(c *gin.Context) {
	items, err := h.service.Restaurants(c.Request.Context(), session(c))
	if err != nil {
		h.writeError(c, err, "Failed to list favorite restaurants")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"restaurants": items})
}

func (h *Handler) addRestaurant(c *gin.Context) {
	var req AddRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.AddRestaurant(c.Request.Context(), session(c), domain.FavoriteRestaurant{
		ID:      req.ID,
		Name:    req.Name,
		Cuisine: req.Cuisine,
		Rating:  req.Rating,
		Image:   req.Image,
	})
	if err != nil {
		h.writeError(c, err, "Failed to add favorite restaurant")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": req.ID})
}

func (h *Handler) removeRestaurant(c *gin.Context) {
	if err := h.service.RemoveRestaurant(c.Request.Context(), session(c), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to remove favorite restaurant")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) listMenuItems(c *gin.Context) {
	items, err := h.service.MenuItems(c.Request.Context(), session(c))
	if err != nil {
		h.writeError(c, err, "Failed to list favorite menu items")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"menuItems": items})
}

func (h *Handler) addMenuItem(c *gin.Context) {
	var req AddMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.AddMenuItem(c.Request.Context(), session(c), req.ItemID); err != nil {
		h.writeError(c, err, "Failed to add favorite menu item")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"itemId": req.ItemID})
}

func (h *Handler) removeMenuItem(c *gin.Context) {
	if err := h.service.RemoveMenuItem(c.Request.Context(), session(c), c.Param("itemId")); err != nil {
		h.writeError(c, err, "Failed to remove favorite menu item")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"itemId": c.Param("itemId")})
}

func (h *Handler) toggleMenuItem(c *gin.Context) {
	favorite, err := h.service.ToggleMenuItem(c.Request.Context(), session(c), c.Param("itemId"))
	if err != nil {
		// the settled (reverted) state still goes back to the caller
		if errors.Is(err, ErrUnavailable) {
			response.ErrorWithDetails(c, http.StatusServiceUnavailable, "UNAVAILABLE",
				"Favorite toggle was rolled back", gin.H{"favorite": favorite})
			return
		}
		h.writeError(c, err, "Failed to toggle favorite")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorite": favorite})
}

func (h *Handler) listAddresses(c *gin.Context) {
	addrs, err := h.service.Addresses(c.Request.Context(), session(c))
	if err != nil {
		h.writeError(c, err, "Failed to list addresses")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"addresses": addrs})
}

func (h *Handler) saveAddress(c *gin.Context) {
	var req SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	id := req.ID
	if id == "" {
		id = ids.New("addr")
	}
	now := time.Now()
	addr := domain.Resource{
		ID:        id,
		Kind:      domain.ResourceAddress,
		Address:   req.Address,
		IsDefault: req.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.service.SaveAddressLocal(addr, req.IsFavorite); err != nil {
		h.writeError(c, err, "Failed to save address")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) removeAddress(c *gin.Context) {
	if err := h.service.RemoveAddressLocal(c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to remove address")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) markAddressFavorite(c *gin.Context) {
	var req MarkAddressFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.MarkAddressFavorite(c.Param("id"), req.IsFavorite); err != nil {
		h.writeError(c, err, "Failed to mark address favorite")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "isFavorite": req.IsFavorite})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Catalog item not found")
	case errors.Is(err, ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Remote favorites store unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
