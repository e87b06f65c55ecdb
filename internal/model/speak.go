package model

import "strconv"

// Shape identifies which IC message wire generation a message uses.
// The value equals the number of fields a client sends in that shape.
type Shape int

const (
	ShapeBase    Shape = 15 // pre-2.6 clients
	ShapePairing Shape = 19 // 2.6: showname, pairing, offsets, immediate
	ShapeEffects Shape = 26 // 2.8: sfx loop, screenshake, frame lists, additive, effect
	ShapeBlips   Shape = 27 // blip sound name
	ShapeSlide   Shape = 28 // slide toggle
)

// ShapeForFieldCount classifies an incoming field count.
// Exactly 15 fields is the base shape; 16-18 fields are malformed; from 19 on
// the richest block whose minimum is reached wins.
func ShapeForFieldCount(n int) (Shape, bool) {
	switch {
	case n >= int(ShapeSlide):
		return ShapeSlide, true
	case n >= int(ShapeBlips):
		return ShapeBlips, true
	case n >= int(ShapeEffects):
		return ShapeEffects, true
	case n >= int(ShapePairing):
		return ShapePairing, true
	case n == int(ShapeBase):
		return ShapeBase, true
	default:
		return 0, false
	}
}

// FieldCount returns the number of fields a client sends in the shape.
func (s Shape) FieldCount() int {
	return int(s)
}

// OutputFieldCount returns the number of fields the server sends for the
// shape. The server fills in the paired character's name, emote, offset and
// flip, so from ShapePairing on the outgoing message is longer than the
// incoming one.
func (s Shape) OutputFieldCount() int {
	n := int(ShapeBase)
	if s.Has(ShapePairing) {
		n += 8
	}
	if s.Has(ShapeEffects) {
		n += 7
	}
	if s.Has(ShapeBlips) {
		n++
	}
	if s.Has(ShapeSlide) {
		n++
	}
	return n
}

// Has reports whether s includes the fields of block.
func (s Shape) Has(block Shape) bool {
	return s >= block
}

func (s Shape) String() string {
	switch s {
	case ShapeBase:
		return "base"
	case ShapePairing:
		return "pairing"
	case ShapeEffects:
		return "effects"
	case ShapeBlips:
		return "blips"
	case ShapeSlide:
		return "slide"
	default:
		return "unknown"
	}
}

// PairingFields are the 2.6 extension fields. Clients send ShowName, PairID,
// SelfOffset and Immediate; the Pair* values are filled in by the server.
type PairingFields struct {
	ShowName   string
	PairID     string // "<charID>" or "<charID>^<order>", "-1" when unpaired
	PairName   string
	PairEmote  string
	SelfOffset string
	PairOffset string
	PairFlip   string
	Immediate  int
}

// EffectFields are the 2.8 extension fields.
type EffectFields struct {
	SFXLoop           int
	ScreenShake       int
	FramesShake       string
	FramesRealization string
	FramesSFX         string
	Additive          int
	Effect            string
}

// SpeakMessage is a validated IC message in canonical field order.
// Pairing, Effects, Blips and Slide are only meaningful when Shape includes
// their block. The struct holds no references, so plain assignment copies it.
type SpeakMessage struct {
	Shape Shape

	DeskMod     string
	PreAnim     string
	Folder      string
	Emote       string
	Text        string
	Side        string
	SFXName     string
	EmoteMod    int
	CharID      int
	SFXDelay    string
	Objection   string
	Evidence    int
	Flip        int
	Realization int
	TextColor   int

	Pairing PairingFields
	Effects EffectFields
	Blips   string
	Slide   string
}

// Fields returns the message as outgoing wire values, Shape.OutputFieldCount() long.
func (m SpeakMessage) Fields() []string {
	fields := make([]string, 0, m.Shape.OutputFieldCount())
	fields = append(fields,
		m.DeskMod,
		m.PreAnim,
		m.Folder,
		m.Emote,
		m.Text,
		m.Side,
		m.SFXName,
		strconv.Itoa(m.EmoteMod),
		strconv.Itoa(m.CharID),
		m.SFXDelay,
		m.Objection,
		strconv.Itoa(m.Evidence),
		strconv.Itoa(m.Flip),
		strconv.Itoa(m.Realization),
		strconv.Itoa(m.TextColor),
	)

	if m.Shape.Has(ShapePairing) {
		p := m.Pairing
		fields = append(fields,
			p.ShowName,
			p.PairID,
			p.PairName,
			p.PairEmote,
			p.SelfOffset,
			p.PairOffset,
			p.PairFlip,
			strconv.Itoa(p.Immediate),
		)
	}

	if m.Shape.Has(ShapeEffects) {
		e := m.Effects
		fields = append(fields,
			strconv.Itoa(e.SFXLoop),
			strconv.Itoa(e.ScreenShake),
			e.FramesShake,
			e.FramesRealization,
			e.FramesSFX,
			strconv.Itoa(e.Additive),
			e.Effect,
		)
	}

	if m.Shape.Has(ShapeBlips) {
		fields = append(fields, m.Blips)
	}
	if m.Shape.Has(ShapeSlide) {
		fields = append(fields, m.Slide)
	}

	return fields
}
