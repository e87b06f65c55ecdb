package courtroom

import (
	"strings"
	"unicode/utf8"

	"github.com/udisondev/aoserver/internal/courtroom/clientpackets"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/textproc"
)

const maxShownameLength = 30

// applyExtensions validates the version specific tail blocks.
func (h *SpeakHandler) applyExtensions(req *speakRequest) error {
	shape := req.in.Shape

	if shape.Has(model.ShapePairing) {
		if err := h.applyPairingBlock(req); err != nil {
			return err
		}
	}
	if shape.Has(model.ShapeEffects) {
		if err := applyEffectsBlock(req); err != nil {
			return err
		}
	}
	if shape.Has(model.ShapeBlips) {
		req.msg.Blips = req.in.Blips
	}
	if shape.Has(model.ShapeSlide) {
		req.msg.Slide = req.in.Slide
	}
	return nil
}

func (h *SpeakHandler) applyPairingBlock(req *speakRequest) error {
	in := req.in
	p := &req.msg.Pairing

	showname := textproc.Dezalgo(strings.TrimSpace(in.ShowName), h.cfg.ZalgoTolerance)
	if showname != "" && showname != req.st.Character && !req.policy.ShownamesAllowed {
		h.transport.ServerMessage(req.sessionID, noticeShownames)
		return reject("shownames disabled")
	}
	if utf8.RuneCountInString(showname) > maxShownameLength {
		h.transport.ServerMessage(req.sessionID, noticeShownameLength)
		return reject("showname too long")
	}
	if showname == "" && in.ShowName != "" {
		showname = " "
	}
	p.ShowName = showname
	req.next.ShowName = showname

	spec := parsePairSpec(in.PairSpec)
	req.next.PairingWith = spec.target
	req.next.Offset = in.SelfOffset

	partner, paired := h.findPartner(req, spec.target)
	if paired {
		p.PairID = spec.String()
		p.PairName = partner.Iniswap
		p.PairEmote = partner.Emote
		p.PairOffset = partner.Offset
		p.PairFlip = partner.Flip
	} else {
		p.PairID = pairSpec{target: model.NoPairing}.String()
		p.PairName = "0"
		p.PairEmote = "0"
		p.PairOffset = "0"
		p.PairFlip = "0"
	}

	p.SelfOffset = req.next.Offset
	if req.st.Version.HorizontalOffsetOnly() {
		p.SelfOffset = horizontalOffset(p.SelfOffset)
		p.PairOffset = horizontalOffset(p.PairOffset)
	}

	immediate := clientpackets.Int(in.Immediate)
	if req.policy.ForceImmediate {
		switch req.msg.EmoteMod {
		case 1, 2:
			req.msg.EmoteMod = 0
			immediate = 1
		case 6:
			req.msg.EmoteMod = 5
			immediate = 1
		}
	}
	if immediate != 0 && immediate != 1 {
		return reject("immediate %q", in.Immediate)
	}
	p.Immediate = immediate

	return nil
}

func applyEffectsBlock(req *speakRequest) error {
	in := req.in
	e := &req.msg.Effects

	var err error
	if e.SFXLoop, err = binaryField("sfx loop", in.SFXLoop); err != nil {
		return err
	}
	if e.ScreenShake, err = binaryField("screenshake", in.ScreenShake); err != nil {
		return err
	}
	e.FramesShake = in.FramesShake
	e.FramesRealization = in.FramesRealization
	e.FramesSFX = in.FramesSFX

	additive, err := binaryField("additive", in.Additive)
	if err != nil {
		return err
	}
	// Additive text only continues the same speaker's previous line.
	last, ok := req.area.LastIC()
	switch {
	case !ok:
		additive = 0
	case last.CharID != req.st.CharID:
		additive = 0
	case additive == 1:
		req.msg.Text = " " + req.msg.Text
	}
	e.Additive = additive

	e.Effect = in.Effect
	return nil
}

func horizontalOffset(offset string) string {
	x, _, _ := strings.Cut(offset, "&")
	return x
}
