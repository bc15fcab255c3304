package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAnalysisCompleted MessageType = "analysis_completed"
	MsgPerformanceAlert  MessageType = "performance_alert"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections, grouped by team
type Hub struct {
	// teamID -> connection set
	teamConns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	log *zap.Logger
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	TeamID string
	HostID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to broadcast to a team's dashboards
type BroadcastMessage struct {
	TeamID  string
	Message *Message
}

// NewHub creates a new WebSocket hub and starts its event loop
func NewHub(log *zap.Logger) *Hub {
	h := &Hub{
		teamConns:  make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.teamConns[conn.TeamID] == nil {
				h.teamConns[conn.TeamID] = make(map[*Connection]bool)
			}
			h.teamConns[conn.TeamID][conn] = true
			h.mu.Unlock()
			h.log.Info("dashboard connected",
				zap.String("teamId", conn.TeamID), zap.String("hostId", conn.HostID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.teamConns[conn.TeamID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.teamConns, conn.TeamID)
					}
					h.log.Info("dashboard disconnected", zap.String("teamId", conn.TeamID))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.teamConns[msg.TeamID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToTeam sends an event to every dashboard watching a team
// (implements service.Broadcaster)
func (h *Hub) BroadcastToTeam(teamID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		TeamID: teamID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
