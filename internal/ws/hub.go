// Package ws pushes refresh hints to clients watching a project. The
// payload carries no task data; clients re-fetch through the REST API.
package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type RefreshEvent struct {
	Type      string `json:"type"`
	ProjectID uint   `json:"projectId"`
}

// Hub tracks open connections per project.
type Hub struct {
	mu      sync.Mutex
	clients map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*websocket.Conn]bool)}
}

var defaultHub = NewHub()

func Default() *Hub {
	return defaultHub
}

// Subscribe upgrades the request and parks the connection in the
// project's client set until the peer goes away.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, projectID uint) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if h.clients[projectID] == nil {
		h.clients[projectID] = make(map[*websocket.Conn]bool)
	}
	h.clients[projectID][conn] = true
	h.mu.Unlock()

	logger.Debug("Websocket client subscribed to project %d", projectID)

	go h.reader(conn, projectID)

	return nil
}

// reader drains inbound frames so pings are answered, and drops the
// connection on the first read error.
func (h *Hub) reader(conn *websocket.Conn, projectID uint) {
	defer h.remove(conn, projectID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn, projectID uint) {
	h.mu.Lock()
	if set, ok := h.clients[projectID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.clients, projectID)
		}
	}
	h.mu.Unlock()

	conn.Close()
}

// BroadcastRefresh tells every watcher of the project to re-fetch its
// task board. Write failures drop the offending connection only.
func (h *Hub) BroadcastRefresh(projectID uint) {
	event := RefreshEvent{Type: "refresh", ProjectID: projectID}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients[projectID]))
	for conn := range h.clients[projectID] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			logger.Debug("Dropping websocket client for project %d: %v", projectID, err)
			h.remove(conn, projectID)
		}
	}
}

// BroadcastRefresh uses the process-wide hub.
func BroadcastRefresh(projectID uint) {
	defaultHub.BroadcastRefresh(projectID)
}
