package serverpackets

import "github.com/udisondev/aoserver/internal/protocol"

// HeaderRT is the header of the judge animation cue.
const HeaderRT = "RT"

// Animation names understood by the client.
const (
	AnimationTestimony = "testimony1"
	AnimationCrossExam = "testimony2"
)

// RT plays a courtroom animation in the area.
//
// Packet structure (S2C "RT"):
//   - animation string  AnimationTestimony or AnimationCrossExam
//   - variant   string  "0" to show, "1" to hide the indicator
type RT struct {
	Animation string
	Variant   string
}

// NewTestimonyStart creates the cue that shows the testimony indicator.
func NewTestimonyStart() RT {
	return RT{Animation: AnimationTestimony, Variant: "0"}
}

// Packet returns the wire form.
func (p RT) Packet() protocol.Packet {
	return protocol.New(HeaderRT, p.Animation, p.Variant)
}
