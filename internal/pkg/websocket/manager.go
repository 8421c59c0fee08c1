package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// client is one connected push-channel subscriber
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes to conn
}

func (c *client) send(msg models.WSMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Manager manages WebSocket subscribers for the realtime push channel
type Manager struct {
	sync.RWMutex
	clients  map[string]*client
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and keeps the subscriber registered
// until the connection drops.
func (m *Manager) HandleConnection(c echo.Context) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	cl := &client{id: uuid.New().String(), conn: ws}
	m.addClient(cl)
	defer m.removeClient(cl.id)

	logger.Debug("WebSocket subscriber connected", logger.String("client_id", cl.id))

	// Drain incoming frames; subscribers are read-only consumers and the
	// read loop doubles as disconnect detection.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			logger.Debug("WebSocket subscriber disconnected",
				logger.String("client_id", cl.id),
				logger.Err(err))
			return nil
		}
	}
}

func (m *Manager) addClient(cl *client) {
	m.Lock()
	defer m.Unlock()
	m.clients[cl.id] = cl
}

func (m *Manager) removeClient(id string) {
	m.Lock()
	defer m.Unlock()
	delete(m.clients, id)
}

// ClientCount returns the number of connected subscribers
func (m *Manager) ClientCount() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

// Close disconnects every subscriber, used during shutdown
func (m *Manager) Close() {
	m.Lock()
	defer m.Unlock()
	for id, cl := range m.clients {
		cl.conn.Close()
		delete(m.clients, id)
	}
}

// Broadcast sends an event to every connected subscriber. Send failures are
// logged and the offending subscriber dropped; a slow client never blocks
// the simulation.
func (m *Manager) Broadcast(event string, data interface{}) {
	rawData, err := json.Marshal(data)
	if err != nil {
		logger.Error("Error marshaling broadcast data",
			logger.String("event", event),
			logger.Err(err))
		return
	}

	msg := models.WSMessage{
		Event: event,
		Data:  rawData,
	}

	m.RLock()
	targets := make([]*client, 0, len(m.clients))
	for _, cl := range m.clients {
		targets = append(targets, cl)
	}
	m.RUnlock()

	for _, cl := range targets {
		if err := cl.send(msg); err != nil {
			logger.Warn("Error sending message to subscriber",
				logger.String("client_id", cl.id),
				logger.Err(err))
			m.removeClient(cl.id)
		}
	}
}

// SendMessage sends a single event frame over one connection
func (m *Manager) SendMessage(conn *websocket.Conn, event string, data interface{}) error {
	if conn == nil {
		return nil // tolerate nil connections in tests
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	return conn.WriteJSON(models.WSMessage{
		Event: event,
		Data:  rawData,
	})
}
