package courtroom

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/udisondev/aoserver/internal/config"
	"github.com/udisondev/aoserver/internal/courtroom/clientpackets"
	"github.com/udisondev/aoserver/internal/iclog"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/textproc"
)

// Notices sent to the speaker or the area.
const (
	noticeMuted          = "You cannot speak while muted."
	noticeFlood          = "You are sending messages too fast."
	noticeBlankpost      = "Blankposting has been forbidden in this area."
	noticeShoutsDisabled = "Shouts have been disabled in this area."
	noticeShownames      = "Shownames are not allowed in this area!"
	noticeShownameLength = "Your showname is too long! Please limit it to under 30 characters"
)

// SpeakHandler validates, transforms and broadcasts IC messages.
type SpeakHandler struct {
	cfg        config.IC
	characters map[string]struct{} // lowercased folder names
	roster     Roster
	transport  Transport
	audit      iclog.Sink
	pipeline   *textproc.Pipeline

	// floodguard is the server-wide cooldown shared by all areas.
	floodguard model.FloodGuard
	now        func() time.Time
}

// SpeakOption configures a SpeakHandler.
type SpeakOption func(*SpeakHandler)

// WithClock replaces time.Now for flood guard checks.
func WithClock(now func() time.Time) SpeakOption {
	return func(h *SpeakHandler) {
		h.now = now
	}
}

// NewSpeakHandler creates a SpeakHandler. characters is the server's
// character list, used to validate iniswaps in areas that forbid them.
func NewSpeakHandler(
	cfg config.IC,
	characters []string,
	roster Roster,
	transport Transport,
	audit iclog.Sink,
	pipeline *textproc.Pipeline,
	opts ...SpeakOption,
) *SpeakHandler {
	h := &SpeakHandler{
		cfg:        cfg,
		characters: make(map[string]struct{}, len(characters)),
		roster:     roster,
		transport:  transport,
		audit:      audit,
		pipeline:   pipeline,
		now:        time.Now,
	}
	for _, c := range characters {
		h.characters[strings.ToLower(c)] = struct{}{}
	}
	if h.audit == nil {
		h.audit = iclog.Discard
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// speakRequest carries one message through the pipeline.
type speakRequest struct {
	sessionID int
	sess      *model.Session
	area      *model.Area
	policy    model.AreaPolicy
	in        *clientpackets.MS

	// st is the session before the message; next is the staged state that
	// replaces it once the message is accepted.
	st   model.SessionState
	next model.SessionState

	msg model.SpeakMessage
	// presented is the validated evidence index of the request, before
	// testimony playback may swap the message.
	presented int
}

// HandleSpeak runs one MS request from sessionID. It returns an error
// wrapping ErrRejected when the message is discarded; nothing else fails.
func (h *SpeakHandler) HandleSpeak(ctx context.Context, sessionID int, fields []string) error {
	sess, ok := h.roster.Session(sessionID)
	if !ok {
		return reject("unknown session %d", sessionID)
	}

	in, err := clientpackets.ParseMS(fields)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	st := sess.Snapshot()
	if st.Muted {
		h.transport.ServerMessage(sessionID, noticeMuted)
		return reject("session muted")
	}

	area, ok := h.roster.Area(st.AreaID)
	if !ok {
		return reject("unknown area %d", st.AreaID)
	}

	ev, err := h.speak(sessionID, sess, area, in, st)
	if err != nil {
		return err
	}

	// The audit sink may hit the database, so it runs outside the area lock.
	if err := h.audit.LogIC(ctx, ev); err != nil {
		slog.Warn("ic log failed", "area", ev.AreaName, "error", err)
	}

	slog.Debug("ic message accepted",
		"session", sessionID,
		"area", ev.AreaName,
		"shape", in.Shape)
	return nil
}

// speak runs the message through the area under its lock and returns the
// audit event of the accepted message.
func (h *SpeakHandler) speak(
	sessionID int,
	sess *model.Session,
	area *model.Area,
	in *clientpackets.MS,
	st model.SessionState,
) (iclog.Event, error) {
	area.Lock()
	defer area.Unlock()

	now := h.now()
	if !area.Floodguard().Allowed(now) {
		h.transport.ServerMessage(sessionID, noticeFlood)
		return iclog.Event{}, reject("area flood guard active")
	}
	// The server-wide window is reserved here and given back unless the
	// message goes out, so no other area can pass it meanwhile.
	release, ok := h.floodguard.TryAcquire(now, h.cfg.GlobalMessageFloodguard)
	if !ok {
		h.transport.ServerMessage(sessionID, noticeFlood)
		return iclog.Event{}, reject("global flood guard active")
	}
	accepted := false
	defer func() {
		if !accepted {
			release()
		}
	}()

	if st.IsSpectator() || !st.Joined {
		return iclog.Event{}, reject("spectator or not joined")
	}
	if area.LockStatus() == model.LockSpectatable &&
		!area.IsInvited(sessionID) &&
		!st.Has(model.PermissionBypassLocks) {
		return iclog.Event{}, reject("area %d is spectatable", area.ID())
	}

	req := &speakRequest{
		sessionID: sessionID,
		sess:      sess,
		area:      area,
		policy:    area.Policy(),
		in:        in,
		st:        st,
		next:      st,
	}

	if err := h.validate(req); err != nil {
		return iclog.Event{}, err
	}
	if err := h.applyExtensions(req); err != nil {
		return iclog.Event{}, err
	}

	h.runTestimony(req)
	req.commit()

	if req.next.Pos != req.st.Pos {
		h.sendEvidenceList(sessionID, area, req.next)
	}

	accepted = true
	return h.dispatch(req, h.presentEvidence(req)), nil
}

// commit writes the staged IC fields back to the session.
func (req *speakRequest) commit() {
	next := req.next
	req.sess.Update(func(s *model.SessionState) {
		s.Iniswap = next.Iniswap
		s.Emote = next.Emote
		s.LastMessage = next.LastMessage
		s.Pos = next.Pos
		s.Flip = next.Flip
		s.ShowName = next.ShowName
		s.PairingWith = next.PairingWith
		s.Offset = next.Offset
	})
}
