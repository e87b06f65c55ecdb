// Package courtroom implements the in-character speak pipeline of an AO2
// courtroom server together with the connection layer that feeds it.
package courtroom

import (
	"errors"
	"fmt"

	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
)

// ErrRejected marks an IC message that was discarded. The sender receives
// nothing except the notices issued along the way.
var ErrRejected = errors.New("ic message rejected")

func reject(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRejected, fmt.Sprintf(format, args...))
}

// Roster resolves sessions and areas by ID.
type Roster interface {
	Session(id int) (*model.Session, bool)
	// SessionsInArea returns the sessions whose current area is areaID.
	SessionsInArea(areaID int) []*model.Session
	Area(id int) (*model.Area, bool)
}

// Transport delivers packets to sessions.
type Transport interface {
	Send(sessionID int, pkt protocol.Packet) error
	// Broadcast sends pkt to every session in the area.
	Broadcast(areaID int, pkt protocol.Packet)
	// ServerMessage sends an OOC notice to one session.
	ServerMessage(sessionID int, msg string)
	// ServerMessageArea sends an OOC notice to every session in the area.
	ServerMessageArea(areaID int, msg string)
}
