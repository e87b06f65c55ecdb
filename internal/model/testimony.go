package model

import "errors"

// TestimonyMode is the state of an area's testimony recorder.
type TestimonyMode int

const (
	TestimonyOff TestimonyMode = iota
	TestimonyRecording
	TestimonyAdd
	TestimonyUpdate
	TestimonyPlayback
)

func (m TestimonyMode) String() string {
	switch m {
	case TestimonyOff:
		return "OFF"
	case TestimonyRecording:
		return "RECORDING"
	case TestimonyAdd:
		return "ADD"
	case TestimonyUpdate:
		return "UPDATE"
	case TestimonyPlayback:
		return "PLAYBACK"
	default:
		return "UNKNOWN"
	}
}

// TestimonyProgress describes where a playback jump landed.
type TestimonyProgress int

const (
	ProgressOK TestimonyProgress = iota
	// ProgressLooped means the jump went past the last statement and wrapped to the first.
	ProgressLooped
	// ProgressStayedAtFirst means the jump went before the first statement.
	ProgressStayedAtFirst
)

// TitleCursor is the cursor value of the title slot.
const TitleCursor = -1

// ErrTestimonyFull is returned when the statement limit has been reached.
var ErrTestimonyFull = errors.New("testimony statement limit reached")

// Testimony is an area's recorded sequence of statements.
// The cursor stays within [TitleCursor, Len()-1].
// Not safe for concurrent use; callers hold the owning area's lock.
type Testimony struct {
	mode          TestimonyMode
	title         *SpeakMessage
	statements    []SpeakMessage
	cursor        int
	maxStatements int
}

// NewTestimony creates an empty testimony. maxStatements <= 0 means no limit.
func NewTestimony(maxStatements int) *Testimony {
	return &Testimony{
		cursor:        TitleCursor,
		maxStatements: maxStatements,
	}
}

// Mode returns the recorder state.
func (t *Testimony) Mode() TestimonyMode {
	return t.mode
}

// SetMode switches the recorder state. Switching to RECORDING starts a new testimony.
func (t *Testimony) SetMode(m TestimonyMode) {
	if m == TestimonyRecording {
		t.Clear()
	}
	t.mode = m
}

// Clear drops all statements and turns the recorder off.
func (t *Testimony) Clear() {
	t.mode = TestimonyOff
	t.title = nil
	t.statements = nil
	t.cursor = TitleCursor
}

// Cursor returns the current statement index, TitleCursor for the title slot.
func (t *Testimony) Cursor() int {
	return t.cursor
}

// Len returns the number of statements, excluding the title.
func (t *Testimony) Len() int {
	return len(t.statements)
}

// AtTitleSlot reports whether the next recorded message becomes the title.
func (t *Testimony) AtTitleSlot() bool {
	return t.cursor == TitleCursor && t.title == nil
}

// Title returns the recorded title.
func (t *Testimony) Title() (SpeakMessage, bool) {
	if t.title == nil {
		return SpeakMessage{}, false
	}
	return *t.title, true
}

// Statement returns the statement at index i.
func (t *Testimony) Statement(i int) (SpeakMessage, bool) {
	if i < 0 || i >= len(t.statements) {
		return SpeakMessage{}, false
	}
	return t.statements[i], true
}

// SetTitle records the title message.
func (t *Testimony) SetTitle(msg SpeakMessage) {
	t.title = &msg
}

func (t *Testimony) full() bool {
	return t.maxStatements > 0 && len(t.statements) >= t.maxStatements
}

// Append adds a statement at the end and moves the cursor onto it.
func (t *Testimony) Append(msg SpeakMessage) error {
	if t.full() {
		return ErrTestimonyFull
	}
	t.statements = append(t.statements, msg)
	t.cursor = len(t.statements) - 1
	return nil
}

// InsertAfterCursor adds a statement right after the current one and moves
// the cursor onto it. At the title slot the statement becomes the first one.
func (t *Testimony) InsertAfterCursor(msg SpeakMessage) error {
	if t.full() {
		return ErrTestimonyFull
	}
	pos := t.cursor + 1
	t.statements = append(t.statements, SpeakMessage{})
	copy(t.statements[pos+1:], t.statements[pos:])
	t.statements[pos] = msg
	t.cursor = pos
	return nil
}

// ReplaceCurrent overwrites the statement under the cursor.
// Returns false at the title slot or when there are no statements.
func (t *Testimony) ReplaceCurrent(msg SpeakMessage) bool {
	if t.cursor < 0 || t.cursor >= len(t.statements) {
		return false
	}
	t.statements[t.cursor] = msg
	return true
}

// Jump moves the cursor to target and returns the statement there.
// Past the last statement the cursor wraps to the first one; before the
// first statement it stays on the first one. Returns false when no
// statements have been recorded.
func (t *Testimony) Jump(target int) (SpeakMessage, TestimonyProgress, bool) {
	if len(t.statements) == 0 {
		return SpeakMessage{}, ProgressOK, false
	}

	progress := ProgressOK
	switch {
	case target > len(t.statements)-1:
		target = 0
		progress = ProgressLooped
	case target < 0:
		target = 0
		progress = ProgressStayedAtFirst
	}

	t.cursor = target
	return t.statements[target], progress, true
}
