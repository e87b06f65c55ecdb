package serverpackets

import (
	"strconv"

	"github.com/udisondev/aoserver/internal/protocol"
)

// HeaderPV is the header of the character selection answer.
const HeaderPV = "PV"

// PV confirms a character selection.
//
// Packet structure (S2C "PV"):
//   - player  int     session ID
//   - "CID"   string  literal
//   - charID  int
type PV struct {
	SessionID int
	CharID    int
}

// NewPV creates a new PV packet.
func NewPV(sessionID, charID int) PV {
	return PV{SessionID: sessionID, CharID: charID}
}

// Packet returns the wire form.
func (p PV) Packet() protocol.Packet {
	return protocol.New(HeaderPV, strconv.Itoa(p.SessionID), "CID", strconv.Itoa(p.CharID))
}
