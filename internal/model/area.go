package model

import (
	"strings"
	"sync"
)

// LockStatus is an area's access state.
type LockStatus int

const (
	LockFree LockStatus = iota
	// LockSpectatable lets anyone watch but only invited sessions speak.
	LockSpectatable
	LockLocked
)

// ParseLockStatus parses the config spelling of a lock status.
func ParseLockStatus(s string) LockStatus {
	switch strings.ToLower(s) {
	case "spectatable":
		return LockSpectatable
	case "locked":
		return LockLocked
	default:
		return LockFree
	}
}

func (l LockStatus) String() string {
	switch l {
	case LockFree:
		return "FREE"
	case LockSpectatable:
		return "SPECTATABLE"
	case LockLocked:
		return "LOCKED"
	default:
		return "UNKNOWN"
	}
}

// AreaPolicy holds the IC rules of an area.
type AreaPolicy struct {
	// Side, when set, replaces the position sent by every speaker.
	Side                string
	IniswapAllowed      bool
	BlankpostingAllowed bool
	ShoutsAllowed       bool
	ShownamesAllowed    bool
	ForceImmediate      bool
	MedievalMode        bool
}

// Area is one courtroom. Its mutable IC state (evidence, testimony, last
// message, flood guard) is guarded by the area lock: hold Lock for the whole
// validate, mutate and broadcast sequence of a message.
type Area struct {
	mu sync.Mutex

	id   int
	name string

	policy      AreaPolicy
	lock        LockStatus
	invited     map[int]struct{}
	evidenceMod EvidenceMod
	evidence    []Evidence
	testimony   *Testimony
	lastIC      *SpeakMessage

	floodguard FloodGuard
}

// NewArea creates an area with an empty evidence list and testimony.
func NewArea(id int, name string, policy AreaPolicy, evidenceMod EvidenceMod, maxStatements int) *Area {
	return &Area{
		id:          id,
		name:        name,
		policy:      policy,
		invited:     make(map[int]struct{}),
		evidenceMod: evidenceMod,
		testimony:   NewTestimony(maxStatements),
	}
}

// Lock acquires the area's IC critical section.
func (a *Area) Lock() {
	a.mu.Lock()
}

// Unlock releases the area's IC critical section.
func (a *Area) Unlock() {
	a.mu.Unlock()
}

// ID returns the area index.
func (a *Area) ID() int {
	return a.id
}

// Name returns the display name.
func (a *Area) Name() string {
	return a.name
}

// Policy returns the IC rules. Caller must hold the area lock.
func (a *Area) Policy() AreaPolicy {
	return a.policy
}

// SetPolicy replaces the IC rules. Caller must hold the area lock.
func (a *Area) SetPolicy(p AreaPolicy) {
	a.policy = p
}

// LockStatus returns the access state. Caller must hold the area lock.
func (a *Area) LockStatus() LockStatus {
	return a.lock
}

// SetLockStatus changes the access state. Caller must hold the area lock.
func (a *Area) SetLockStatus(l LockStatus) {
	a.lock = l
}

// Invite allows a session to speak while the area is spectatable.
// Caller must hold the area lock.
func (a *Area) Invite(sessionID int) {
	a.invited[sessionID] = struct{}{}
}

// IsInvited reports whether a session was invited. Caller must hold the area lock.
func (a *Area) IsInvited(sessionID int) bool {
	_, ok := a.invited[sessionID]
	return ok
}

// EvidenceMod returns the evidence policy. Caller must hold the area lock.
func (a *Area) EvidenceMod() EvidenceMod {
	return a.evidenceMod
}

// AddEvidence appends an evidence entry. Caller must hold the area lock.
func (a *Area) AddEvidence(e Evidence) {
	a.evidence = append(a.evidence, e)
}

// EvidenceCount returns the number of evidence entries. Caller must hold the area lock.
func (a *Area) EvidenceCount() int {
	return len(a.evidence)
}

// Evidence returns a copy of the entry at real index i. Caller must hold the area lock.
func (a *Area) Evidence(i int) (Evidence, bool) {
	if i < 0 || i >= len(a.evidence) {
		return Evidence{}, false
	}
	return a.evidence[i], true
}

func (a *Area) evidenceVisible(e Evidence, pos string, bypass bool) bool {
	if a.evidenceMod != EvidenceHiddenCM || bypass {
		return true
	}
	return e.VisibleTo(pos)
}

// VisibleEvidence returns the entries a session at pos sees, in list order.
// bypass is set for sessions holding PermissionCM. Caller must hold the area lock.
func (a *Area) VisibleEvidence(pos string, bypass bool) []Evidence {
	visible := make([]Evidence, 0, len(a.evidence))
	for _, e := range a.evidence {
		if a.evidenceVisible(e, pos, bypass) {
			visible = append(visible, e)
		}
	}
	return visible
}

// EvidenceIndexByVisibleIndex translates a 1-based index into the list a
// session at pos sees into a 0-based index of the full list.
// Returns -1 when there is no such entry. Caller must hold the area lock.
func (a *Area) EvidenceIndexByVisibleIndex(visible int, pos string, bypass bool) int {
	if visible <= 0 {
		return -1
	}
	seen := 0
	for i, e := range a.evidence {
		if !a.evidenceVisible(e, pos, bypass) {
			continue
		}
		seen++
		if seen == visible {
			return i
		}
	}
	return -1
}

// VisibleIndexByEvidenceIndex translates a 0-based index of the full list
// into the 1-based index a session at pos sees. Returns 0 when the entry is
// hidden from that session. Caller must hold the area lock.
func (a *Area) VisibleIndexByEvidenceIndex(real int, pos string, bypass bool) int {
	if real < 0 || real >= len(a.evidence) {
		return 0
	}
	if !a.evidenceVisible(a.evidence[real], pos, bypass) {
		return 0
	}
	visible := 0
	for i := 0; i <= real; i++ {
		if a.evidenceVisible(a.evidence[i], pos, bypass) {
			visible++
		}
	}
	return visible
}

// SetEvidenceOwnerToAll makes an entry visible from every position.
// Caller must hold the area lock.
func (a *Area) SetEvidenceOwnerToAll(real int) {
	if real < 0 || real >= len(a.evidence) {
		return
	}
	a.evidence[real].Owner = EvidenceOwnerAll
}

// Testimony returns the testimony recorder. Caller must hold the area lock.
func (a *Area) Testimony() *Testimony {
	return a.testimony
}

// LastIC returns the last accepted message. Caller must hold the area lock.
func (a *Area) LastIC() (SpeakMessage, bool) {
	if a.lastIC == nil {
		return SpeakMessage{}, false
	}
	return *a.lastIC, true
}

// SetLastIC records the last accepted message. Caller must hold the area lock.
func (a *Area) SetLastIC(msg SpeakMessage) {
	a.lastIC = &msg
}

// Floodguard returns the area's message cooldown.
func (a *Area) Floodguard() *FloodGuard {
	return &a.floodguard
}
