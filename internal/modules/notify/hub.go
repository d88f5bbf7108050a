package notify

import (
	"sync"

	"tablebook/internal/domain"

	"github.com/gorilla/websocket"
)

// Hub tracks one websocket connection per owner and pushes reservation
// status transitions to it. Delivery is best-effort: an offline owner simply
// misses the push, the stored record stays authoritative.
type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *Hub) Register(ownerID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[ownerID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[ownerID] = conn
}

func (h *Hub) Unregister(ownerID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[ownerID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, ownerID)
	}
}

func (h *Hub) sendToOwner(ownerID string, message interface{}) bool {
	h.mutex.RLock()
	conn, exists := h.connections[ownerID]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(ownerID)
		return false
	}

	return true
}

// StatusEvent is the wire shape pushed on a transition.
type StatusEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservationId"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// NotifyStatusChanged implements reservations.StatusNotifier.
func (h *Hub) NotifyStatusChanged(ownerID string, r *domain.Reservation) {
	_ = h.sendToOwner(ownerID, StatusEvent{
		Type:          "reservation_status",
		ReservationID: r.ID,
		Status:        string(r.Status),
		Date:          r.Date.Format("2006-01-02"),
		Time:          r.Time,
	})
}

func (h *Hub) IsOnline(ownerID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[ownerID]
	return exists
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for ownerID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, ownerID)
	}
}
