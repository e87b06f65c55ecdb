package serverpackets

import "github.com/udisondev/aoserver/internal/protocol"

// HeaderCT is the header of an OOC chat line.
const HeaderCT = "CT"

// CT is an OOC chat line. The server uses it for notices.
//
// Packet structure (S2C "CT"):
//   - name     string  sender shown in the OOC log
//   - message  string
//   - fromSrv  string  "1" when sent by the server
type CT struct {
	Name       string
	Message    string
	FromServer bool
}

// NewServerMessage creates a CT notice sent by the server.
func NewServerMessage(serverName, message string) CT {
	return CT{Name: serverName, Message: message, FromServer: true}
}

// Packet returns the wire form.
func (p CT) Packet() protocol.Packet {
	from := "0"
	if p.FromServer {
		from = "1"
	}
	return protocol.New(HeaderCT, p.Name, p.Message, from)
}
