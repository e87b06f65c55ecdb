package courtroom

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/udisondev/aoserver/internal/courtroom/clientpackets"
	"github.com/udisondev/aoserver/internal/textproc"
)

// deskMods maps accepted desk modifiers to their outgoing value.
var deskMods = map[string]string{
	"chat": "1",
	"0":    "0",
	"1":    "1",
	"2":    "2",
	"3":    "3",
	"4":    "4",
	"5":    "5",
}

const (
	maxTextColor = 11
	maxObjection = 4
	// customShoutMarker in the objection field carries custom shout metadata.
	customShoutMarker = "4"
)

// validate checks the base fields and fills req.msg and req.next.
func (h *SpeakHandler) validate(req *speakRequest) error {
	in := req.in
	msg := &req.msg
	msg.Shape = in.Shape

	deskMod, ok := deskMods[in.DeskMod]
	if !ok {
		return reject("desk mod %q", in.DeskMod)
	}
	msg.DeskMod = deskMod
	msg.PreAnim = in.PreAnim

	if !strings.EqualFold(in.Folder, req.st.Character) && !req.policy.IniswapAllowed && !h.knownFolder(in.Folder) {
		return reject("iniswap to %q", in.Folder)
	}
	req.next.Iniswap = in.Folder
	msg.Folder = in.Folder

	req.next.Emote = in.Emote
	if req.st.FirstPerson {
		req.next.Emote = ""
	}
	msg.Emote = req.next.Emote

	text, err := h.validateText(req)
	if err != nil {
		return err
	}
	req.next.LastMessage = text
	msg.Text = text

	side := req.policy.Side
	if side == "" {
		side = in.Side
	}
	req.next.Pos = sanitizePos(side)
	msg.Side = req.next.Pos

	msg.SFXName = in.SFXName

	emoteMod := clientpackets.Int(in.EmoteMod)
	if emoteMod == 4 {
		// Some clients send 4, which crashes everyone who receives it.
		emoteMod = 6
	}
	switch emoteMod {
	case 0, 1, 2, 5, 6:
	default:
		return reject("emote mod %d", emoteMod)
	}
	msg.EmoteMod = emoteMod

	charID := clientpackets.Int(in.CharID)
	if charID != req.st.CharID {
		return reject("char id %d, session has %d", charID, req.st.CharID)
	}
	msg.CharID = charID

	msg.SFXDelay = in.SFXDelay

	objection, err := h.validateObjection(req)
	if err != nil {
		return err
	}
	msg.Objection = objection

	evidence := clientpackets.Int(in.Evidence)
	if evidence < 0 || evidence > req.area.EvidenceCount() {
		return reject("evidence %d of %d", evidence, req.area.EvidenceCount())
	}
	msg.Evidence = evidence
	req.presented = evidence

	flip, err := binaryField("flip", in.Flip)
	if err != nil {
		return err
	}
	msg.Flip = flip
	req.next.Flip = strconv.Itoa(flip)

	realization, err := binaryField("realization", in.Realization)
	if err != nil {
		return err
	}
	msg.Realization = realization

	color := clientpackets.Int(in.TextColor)
	if color < 0 || color > maxTextColor {
		return reject("text color %d", color)
	}
	msg.TextColor = color

	return nil
}

// validateText applies length, doublepost and blankpost rules, then the
// text transforms.
func (h *SpeakHandler) validateText(req *speakRequest) (string, error) {
	raw := req.in.Text
	if h.cfg.MaxCharacters > 0 && utf8.RuneCountInString(raw) > h.cfg.MaxCharacters {
		return "", reject("message too long")
	}

	text := textproc.Dezalgo(strings.TrimSpace(raw), h.cfg.ZalgoTolerance)

	if req.st.LastMessage != "" && text == req.st.LastMessage && !textproc.IsJumpToken(text) {
		return "", reject("doublepost")
	}

	if text == "" && !req.policy.BlankpostingAllowed {
		h.transport.ServerMessage(req.sessionID, noticeBlankpost)
		return "", reject("blankpost")
	}

	return h.pipeline.Apply(text, textproc.Flags{
		Gimped:       req.st.Gimped,
		Medieval:     req.st.Medieval || req.policy.MedievalMode,
		Shaken:       req.st.Shaken,
		Disemvoweled: req.st.Disemvoweled,
	}), nil
}

func (h *SpeakHandler) validateObjection(req *speakRequest) (string, error) {
	raw := req.in.Objection
	if !req.policy.ShoutsAllowed {
		if raw != "0" {
			h.transport.ServerMessage(req.sessionID, noticeShoutsDisabled)
		}
		return "0", nil
	}

	if strings.Contains(raw, customShoutMarker) {
		return raw, nil
	}
	obj := clientpackets.Int(raw)
	if obj < 0 || obj > maxObjection {
		return "", reject("objection %q", raw)
	}
	return strconv.Itoa(obj), nil
}

// knownFolder reports whether an iniswap folder names a server character
// and does not climb out of the character directory.
func (h *SpeakHandler) knownFolder(folder string) bool {
	parts := strings.Split(folder, "/")
	for _, p := range parts {
		if p == ".." {
			return false
		}
	}
	_, ok := h.characters[strings.ToLower(parts[0])]
	return ok
}

func sanitizePos(pos string) string {
	pos = strings.ReplaceAll(pos, "../", "")
	return strings.ReplaceAll(pos, `..\`, "")
}

func binaryField(name, raw string) (int, error) {
	v := clientpackets.Int(raw)
	if v != 0 && v != 1 {
		return 0, reject("%s %q", name, raw)
	}
	return v, nil
}
