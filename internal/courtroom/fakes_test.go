package courtroom

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/aoserver/internal/config"
	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/iclog"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
	"github.com/udisondev/aoserver/internal/textproc"
)

var testCharacters = []string{"Phoenix", "Edgeworth", "Maya", "Franziska"}

type fakeRoster struct {
	sessions []*model.Session
	areas    []*model.Area
}

func (r *fakeRoster) Session(id int) (*model.Session, bool) {
	for _, s := range r.sessions {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

func (r *fakeRoster) SessionsInArea(areaID int) []*model.Session {
	var out []*model.Session
	for _, s := range r.sessions {
		if s.Snapshot().AreaID == areaID {
			out = append(out, s)
		}
	}
	return out
}

func (r *fakeRoster) Area(id int) (*model.Area, bool) {
	if id < 0 || id >= len(r.areas) {
		return nil, false
	}
	return r.areas[id], true
}

type areaPacket struct {
	areaID int
	pkt    protocol.Packet
}

type fakeTransport struct {
	mu          sync.Mutex
	sent        map[int][]protocol.Packet
	broadcasts  []areaPacket
	notices     map[int][]string
	areaNotices map[int][]string

	// onBroadcast runs after a broadcast is recorded, outside mu.
	onBroadcast func(areaID int)
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		sent:        make(map[int][]protocol.Packet),
		notices:     make(map[int][]string),
		areaNotices: make(map[int][]string),
	}
}

func (f *fakeTransport) Send(sessionID int, pkt protocol.Packet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[sessionID] = append(f.sent[sessionID], pkt)
	return nil
}

func (f *fakeTransport) Broadcast(areaID int, pkt protocol.Packet) {
	f.mu.Lock()
	f.broadcasts = append(f.broadcasts, areaPacket{areaID: areaID, pkt: pkt})
	hook := f.onBroadcast
	f.mu.Unlock()

	if hook != nil {
		hook(areaID)
	}
}

func (f *fakeTransport) ServerMessage(sessionID int, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices[sessionID] = append(f.notices[sessionID], msg)
}

func (f *fakeTransport) ServerMessageArea(areaID int, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.areaNotices[areaID] = append(f.areaNotices[areaID], msg)
}

// broadcastsOf returns the broadcast packets with the given header.
func (f *fakeTransport) broadcastsOf(header string) []protocol.Packet {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []protocol.Packet
	for _, b := range f.broadcasts {
		if b.pkt.Header == header {
			out = append(out, b.pkt)
		}
	}
	return out
}

// sentOf returns the packets sent directly to a session with the given header.
func (f *fakeTransport) sentOf(sessionID int, header string) []protocol.Packet {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []protocol.Packet
	for _, p := range f.sent[sessionID] {
		if p.Header == header {
			out = append(out, p)
		}
	}
	return out
}

type fakeAudit struct {
	events []iclog.Event
	err    error
	onLog  func(ev iclog.Event)
}

func (a *fakeAudit) LogIC(_ context.Context, ev iclog.Event) error {
	if a.onLog != nil {
		a.onLog(ev)
	}
	a.events = append(a.events, ev)
	return a.err
}

type harness struct {
	roster    *fakeRoster
	transport *fakeTransport
	audit     *fakeAudit
	handler   *SpeakHandler
	now       time.Time
}

func testIC() config.IC {
	cfg := config.DefaultIC()
	cfg.MessageFloodguard = 0
	cfg.GimpList = []string{"gimped line"}
	return cfg
}

func newHarness(t *testing.T, cfg config.IC) *harness {
	t.Helper()

	pipeline, err := textproc.NewPipeline(textproc.Config{
		Filters:       cfg.FilterList,
		GimpList:      cfg.GimpList,
		MedievalWords: cfg.MedievalWords,
	}, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)

	h := &harness{
		roster:    &fakeRoster{},
		transport: newFakeTransport(),
		audit:     &fakeAudit{},
		now:       time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC),
	}
	h.handler = NewSpeakHandler(cfg, testCharacters, h.roster, h.transport, h.audit, pipeline,
		WithClock(func() time.Time { return h.now }))
	return h
}

// openPolicy allows everything.
func openPolicy() model.AreaPolicy {
	return model.AreaPolicy{
		IniswapAllowed:      true,
		BlankpostingAllowed: true,
		ShoutsAllowed:       true,
		ShownamesAllowed:    true,
	}
}

func (h *harness) addArea(policy model.AreaPolicy, mod model.EvidenceMod) *model.Area {
	a := model.NewArea(len(h.roster.areas), "Area "+string(rune('A'+len(h.roster.areas))), policy, mod, 5)
	h.roster.areas = append(h.roster.areas, a)
	return a
}

// join adds a joined session playing charID from testCharacters.
func (h *harness) join(id, areaID, charID int, pos string, mutate ...func(*model.SessionState)) *model.Session {
	s := model.NewSession(id, "ipid"+string(rune('0'+id)))
	s.Update(func(st *model.SessionState) {
		st.AreaID = areaID
		st.Joined = true
		st.CharID = charID
		st.Character = testCharacters[charID]
		st.Pos = pos
		for _, m := range mutate {
			m(st)
		}
	})
	h.roster.sessions = append(h.roster.sessions, s)
	return s
}

func (h *harness) speak(sessionID int, fields []string) error {
	return h.handler.HandleSpeak(context.Background(), sessionID, fields)
}

// lastMS returns the field values of the last MS broadcast.
func (h *harness) lastMS(t *testing.T) []string {
	t.Helper()
	all := h.transport.broadcastsOf(serverpackets.HeaderMS)
	require.NotEmpty(t, all, "no MS broadcast")
	return all[len(all)-1].Values()
}

// Outgoing MS field indices past the base block.
const (
	outShowName   = 15
	outPairID     = 16
	outPairName   = 17
	outPairEmote  = 18
	outSelfOffset = 19
	outPairOffset = 20
	outPairFlip   = 21
	outImmediate  = 22
	outSFXLoop    = 23
	outAdditive   = 28
	outBlips      = 30
	outSlide      = 31
)

// msFields returns a valid base request from Phoenix (char 0) at def.
func msFields(text string) []string {
	return []string{
		"chat",    // desk mod
		"-",       // preanim
		"Phoenix", // folder
		"normal",  // emote
		text,      // text
		"def",     // side
		"-",       // sfx name
		"0",       // emote mod
		"0",       // char id
		"0",       // sfx delay
		"0",       // objection
		"0",       // evidence
		"0",       // flip
		"0",       // realization
		"0",       // text color
	}
}

// extensionDefaults are valid values for incoming fields 15 onwards.
var extensionDefaults = []string{
	// showname, pair spec, self offset, immediate
	"", "-1", "0", "0",
	// sfx loop, shake, shake/realization/sfx frames, additive, effect
	"0", "0", "", "", "", "0", "",
	// blips, slide
	"male", "1",
}

// shaped pads a base request to n fields with valid extension values.
func shaped(fields []string, n int) []string {
	out := append([]string(nil), fields...)
	for len(out) < n {
		out = append(out, extensionDefaults[len(out)-15])
	}
	return out
}

// with returns a copy of fields with field i set to v.
func with(fields []string, i int, v string) []string {
	out := append([]string(nil), fields...)
	out[i] = v
	return out
}
