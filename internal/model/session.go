package model

import "sync"

// Permission is a bit set of moderation rights held by a session.
type Permission uint8

const (
	// PermissionCM lets a session see all evidence regardless of ownership.
	PermissionCM Permission = 1 << iota
	// PermissionBypassLocks lets a session speak in spectatable areas.
	PermissionBypassLocks
)

// NoCharacter is the character ID of a session that has not picked a character.
const NoCharacter = -1

// NoPairing is the pairing target of an unpaired session.
const NoPairing = -1

// ClientVersion is the AO2 client version reported at handshake.
type ClientVersion struct {
	Release int
	Major   int
	Minor   int
}

// HorizontalOffsetOnly reports whether the client only understands the
// horizontal component of character offsets (2.6 through 2.8).
func (v ClientVersion) HorizontalOffsetOnly() bool {
	return v.Release == 2 && v.Major >= 6 && v.Major <= 8
}

// SessionState is the IC-relevant state of one connected participant.
type SessionState struct {
	AreaID    int
	Joined    bool
	OOCName   string
	Character string // selected character folder, "" when none
	CharID    int
	ShowName  string

	Pos         string
	Emote       string
	Iniswap     string
	PairingWith int
	Offset      string
	Flip        string

	Muted        bool
	Gimped       bool
	Medieval     bool
	Shaken       bool
	Disemvoweled bool
	FirstPerson  bool

	Permissions Permission
	Version     ClientVersion
	LastMessage string
}

// Has reports whether the session holds permission p.
func (s SessionState) Has(p Permission) bool {
	return s.Permissions&p != 0
}

// IsSpectator reports whether the session has no character selected.
func (s SessionState) IsSpectator() bool {
	return s.CharID == NoCharacter || s.Character == ""
}

// Session is one connected participant. The connection layer owns it;
// other sessions refer to it by ID only.
type Session struct {
	id   int
	ipid string

	mu sync.RWMutex
	st SessionState
}

// NewSession creates a session with no character selected.
func NewSession(id int, ipid string) *Session {
	return &Session{
		id:   id,
		ipid: ipid,
		st: SessionState{
			CharID:      NoCharacter,
			PairingWith: NoPairing,
			Flip:        "0",
			Offset:      "0",
		},
	}
}

// ID returns the session identifier.
func (s *Session) ID() int {
	return s.id
}

// IPID returns the origin identifier derived from the client address.
func (s *Session) IPID() string {
	return s.ipid
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

// Update mutates the session state under its lock.
func (s *Session) Update(fn func(*SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.st)
}
