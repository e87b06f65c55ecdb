package courtroom

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
)

// ClientManager tracks connected clients and the server's areas.
// It is the Roster and Transport of the speak pipeline.
// Thread-safe for concurrent access.
type ClientManager struct {
	serverName string
	areas      []*model.Area // fixed after construction

	mu      sync.RWMutex
	clients map[int]*Client // key: session ID
	nextID  int
}

// NewClientManager creates a client manager over a fixed area list.
// Area IDs are their indices.
func NewClientManager(serverName string, areas []*model.Area) *ClientManager {
	return &ClientManager{
		serverName: serverName,
		areas:      areas,
		clients:    make(map[int]*Client, 64),
	}
}

// NextSessionID allocates a session identifier.
func (cm *ClientManager) NextSessionID() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	id := cm.nextID
	cm.nextID++
	return id
}

// Register adds a client to the manager.
func (cm *ClientManager) Register(client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[client.SessionID()] = client
}

// Unregister removes a client from the manager.
func (cm *ClientManager) Unregister(sessionID int) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.clients, sessionID)
}

// Client returns the client of a session.
func (cm *ClientManager) Client(sessionID int) (*Client, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	c, ok := cm.clients[sessionID]
	return c, ok
}

// Count returns total number of connected clients.
func (cm *ClientManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// ForEachClient iterates over all connected clients.
// If fn returns false, iteration stops.
func (cm *ClientManager) ForEachClient(fn func(*Client) bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	for _, client := range cm.clients {
		if !fn(client) {
			return
		}
	}
}

// Session implements Roster.
func (cm *ClientManager) Session(id int) (*model.Session, bool) {
	c, ok := cm.Client(id)
	if !ok {
		return nil, false
	}
	return c.Session(), true
}

// SessionsInArea implements Roster.
func (cm *ClientManager) SessionsInArea(areaID int) []*model.Session {
	var sessions []*model.Session
	cm.ForEachClient(func(c *Client) bool {
		if c.Session().Snapshot().AreaID == areaID {
			sessions = append(sessions, c.Session())
		}
		return true
	})
	return sessions
}

// Area implements Roster.
func (cm *ClientManager) Area(id int) (*model.Area, bool) {
	if id < 0 || id >= len(cm.areas) {
		return nil, false
	}
	return cm.areas[id], true
}

// Areas returns all areas in index order.
func (cm *ClientManager) Areas() []*model.Area {
	return cm.areas
}

// Send implements Transport.
func (cm *ClientManager) Send(sessionID int, pkt protocol.Packet) error {
	c, ok := cm.Client(sessionID)
	if !ok {
		return fmt.Errorf("session %d not connected", sessionID)
	}
	return c.Send(pkt)
}

// Broadcast implements Transport.
func (cm *ClientManager) Broadcast(areaID int, pkt protocol.Packet) {
	cm.ForEachClient(func(c *Client) bool {
		if c.Session().Snapshot().AreaID != areaID {
			return true
		}
		if err := c.Send(pkt); err != nil {
			slog.Warn("broadcast send failed", "session", c.SessionID(), "error", err)
		}
		return true
	})
}

// ServerMessage implements Transport.
func (cm *ClientManager) ServerMessage(sessionID int, msg string) {
	pkt := serverpackets.NewServerMessage(cm.serverName, msg).Packet()
	if err := cm.Send(sessionID, pkt); err != nil {
		slog.Warn("server message send failed", "session", sessionID, "error", err)
	}
}

// ServerMessageArea implements Transport.
func (cm *ClientManager) ServerMessageArea(areaID int, msg string) {
	cm.Broadcast(areaID, serverpackets.NewServerMessage(cm.serverName, msg).Packet())
}
