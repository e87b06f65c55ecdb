package clientpackets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/aoserver/internal/model"
)

// HeaderMS is the header of the IC speak packet.
//
// Packet structure (C2S "MS"), 0-indexed:
//   - 0-14  base: desk mod, preanim, folder, emote, text, side, sfx name,
//     emote mod, char id, sfx delay, objection, evidence, flip, realization, color
//   - 15-18 2.6: showname, pair spec, self offset, immediate
//   - 19-25 2.8: sfx loop, screenshake, shake frames, realization frames,
//     sfx frames, additive, effect
//   - 26    blips
//   - 27    slide
const HeaderMS = "MS"

// ErrMalformedShape is returned for field counts that match no MS shape.
var ErrMalformedShape = errors.New("malformed MS shape")

// MS is an IC speak request as received. Values are unescaped but otherwise
// unvalidated. Fields beyond Shape are empty.
type MS struct {
	Shape model.Shape

	DeskMod     string
	PreAnim     string
	Folder      string
	Emote       string
	Text        string
	Side        string
	SFXName     string
	EmoteMod    string
	CharID      string
	SFXDelay    string
	Objection   string
	Evidence    string
	Flip        string
	Realization string
	TextColor   string

	ShowName   string
	PairSpec   string
	SelfOffset string
	Immediate  string

	SFXLoop           string
	ScreenShake       string
	FramesShake       string
	FramesRealization string
	FramesSFX         string
	Additive          string
	Effect            string

	Blips string
	Slide string
}

// ParseMS classifies fields by count and copies them into an MS.
// Fields past the richest complete block are ignored.
func ParseMS(fields []string) (*MS, error) {
	shape, ok := model.ShapeForFieldCount(len(fields))
	if !ok {
		return nil, fmt.Errorf("%w: %d fields", ErrMalformedShape, len(fields))
	}

	ms := &MS{
		Shape:       shape,
		DeskMod:     fields[0],
		PreAnim:     fields[1],
		Folder:      fields[2],
		Emote:       fields[3],
		Text:        fields[4],
		Side:        fields[5],
		SFXName:     fields[6],
		EmoteMod:    fields[7],
		CharID:      fields[8],
		SFXDelay:    fields[9],
		Objection:   fields[10],
		Evidence:    fields[11],
		Flip:        fields[12],
		Realization: fields[13],
		TextColor:   fields[14],
	}

	if shape.Has(model.ShapePairing) {
		ms.ShowName = fields[15]
		ms.PairSpec = fields[16]
		ms.SelfOffset = fields[17]
		ms.Immediate = fields[18]
	}

	if shape.Has(model.ShapeEffects) {
		ms.SFXLoop = fields[19]
		ms.ScreenShake = fields[20]
		ms.FramesShake = fields[21]
		ms.FramesRealization = fields[22]
		ms.FramesSFX = fields[23]
		ms.Additive = fields[24]
		ms.Effect = fields[25]
	}

	if shape.Has(model.ShapeBlips) {
		ms.Blips = fields[26]
	}
	if shape.Has(model.ShapeSlide) {
		ms.Slide = fields[27]
	}

	return ms, nil
}

// Int parses a numeric field. Non-numeric input yields 0.
func Int(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
