package courtroom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/textproc"
)

const (
	noticeStatementSymbols = "Unable to add statements containing '>' or '<'."
	noticeTestimonyFull    = "Unable to add more statements. The maximum amount of statements has been reached."
	noticeUpdated          = "Updated current statement."
	noticeUpdateEmpty      = "Unable to update an empty statement. Please use /addtestimony."
	noticeLooped           = "Last statement reached. Looping to first statement."
	noticeFirstStatement   = "First statement reached."
)

// Text colors used by the testimony recorder.
const (
	colorStatement = 1 // green
	colorTitle     = 3 // orange
)

// runTestimony feeds an accepted message to the area's testimony recorder.
// In PLAYBACK a navigation token replaces req.msg with a stored statement.
func (h *SpeakHandler) runTestimony(req *speakRequest) {
	t := req.area.Testimony()

	switch t.Mode() {
	case model.TestimonyRecording, model.TestimonyAdd:
		h.recordStatement(req, t)
	case model.TestimonyUpdate:
		h.updateStatement(req, t)
	case model.TestimonyPlayback:
		h.playStatement(req, t)
	}
}

func (h *SpeakHandler) recordStatement(req *speakRequest, t *model.Testimony) {
	if strings.ContainsAny(req.msg.Text, "<>") {
		h.transport.ServerMessage(req.sessionID, noticeStatementSymbols)
		return
	}

	adding := t.Mode() == model.TestimonyAdd
	if adding {
		defer t.SetMode(model.TestimonyPlayback)
	}

	if t.AtTitleSlot() {
		req.msg.Text = "~~-- " + req.msg.Text + " --"
		req.msg.TextColor = colorTitle
		h.transport.Broadcast(req.area.ID(), serverpackets.NewTestimonyStart().Packet())
		t.SetTitle(req.msg)
		return
	}

	stmt := req.msg
	stmt.TextColor = colorStatement

	var err error
	if adding {
		err = t.InsertAfterCursor(stmt)
	} else {
		err = t.Append(stmt)
	}
	if errors.Is(err, model.ErrTestimonyFull) {
		h.transport.ServerMessage(req.sessionID, noticeTestimonyFull)
	}
}

func (h *SpeakHandler) updateStatement(req *speakRequest, t *model.Testimony) {
	t.SetMode(model.TestimonyPlayback)

	if strings.ContainsAny(req.msg.Text, "<>") {
		h.transport.ServerMessage(req.sessionID, noticeStatementSymbols)
		return
	}

	stmt := req.msg
	stmt.TextColor = colorStatement
	if !t.ReplaceCurrent(stmt) {
		h.transport.ServerMessage(req.sessionID, noticeUpdateEmpty)
		return
	}

	h.transport.ServerMessage(req.sessionID, noticeUpdated)
	req.msg = stmt
}

func (h *SpeakHandler) playStatement(req *speakRequest, t *model.Testimony) {
	jump, ok := textproc.ParseJump(req.msg.Text)
	if !ok {
		return
	}

	name := req.st.OOCName
	if name == "" {
		name = req.st.Character
	}

	var (
		target int
		notice string
	)
	switch jump.Kind {
	case textproc.JumpNext:
		target = t.Cursor() + 1
		notice = name + " moved to the next statement."
	case textproc.JumpPrevious:
		target = t.Cursor() - 1
		notice = name + " moved to the previous statement."
	case textproc.JumpRepeat:
		target = t.Cursor()
		notice = name + " repeated the current statement."
	case textproc.JumpTo:
		target = jump.Index
		notice = fmt.Sprintf("%s jumped to statement number %d.", name, jump.Index)
	}

	stmt, progress, ok := t.Jump(target)
	if !ok {
		return
	}
	req.msg = stmt
	req.next.Pos = stmt.Side

	areaID := req.area.ID()
	h.transport.ServerMessageArea(areaID, notice)

	switch progress {
	case model.ProgressLooped:
		h.transport.ServerMessageArea(areaID, noticeLooped)
	case model.ProgressStayedAtFirst:
		// Repeating from the title slot lands on the first statement silently.
		if jump.Kind != textproc.JumpRepeat {
			h.transport.ServerMessage(req.sessionID, noticeFirstStatement)
		}
	}
}
