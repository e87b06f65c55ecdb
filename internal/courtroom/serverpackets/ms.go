package serverpackets

import (
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
)

// HeaderMS is the header of the IC speak broadcast.
const HeaderMS = "MS"

// MS is a validated IC message sent to area members.
//
// Packet structure (S2C "MS"): the canonical field order of
// model.SpeakMessage.Fields, truncated to the shape the speaker used.
// Unlike the request, the 2.6 block carries the paired character's name,
// emote, offset and flip filled in by the server.
type MS struct {
	Message model.SpeakMessage
}

// NewMS creates a new MS packet.
func NewMS(msg model.SpeakMessage) MS {
	return MS{Message: msg}
}

// Packet returns the wire form.
func (p MS) Packet() protocol.Packet {
	return protocol.New(HeaderMS, p.Message.Fields()...)
}
