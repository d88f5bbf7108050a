package notify

import (
	"log"
	"net/http"

	"tablebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origin policy is enforced by the CORS middleware in front
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes mounts the push socket; the group must require auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications/ws", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	if ownerID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing session")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("notify: upgrade failed owner=%s err=%v", ownerID, err)
		return
	}

	h.hub.Register(ownerID, conn)

	// drain control frames until the client goes away
	go func() {
		defer h.hub.Unregister(ownerID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
