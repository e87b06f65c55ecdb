package serverpackets

import (
	"strings"

	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
)

// HeaderLE is the header of the evidence list.
const HeaderLE = "LE"

// LE is the evidence list a session sees.
//
// Packet structure (S2C "LE"), one field per entry:
//   - entry string  name&description&image, each part escaped
type LE struct {
	Evidence []model.Evidence
}

// NewLE creates an LE packet from the entries visible to the recipient.
func NewLE(evidence []model.Evidence) LE {
	return LE{Evidence: evidence}
}

// Packet returns the wire form.
func (p LE) Packet() protocol.Packet {
	fields := make([]string, len(p.Evidence))
	for i, e := range p.Evidence {
		fields[i] = strings.Join([]string{
			protocol.Escape(e.Name),
			protocol.Escape(e.Description),
			protocol.Escape(e.Image),
		}, "&")
	}
	return protocol.NewRaw(HeaderLE, fields...)
}
