package courtroom

import (
	"strconv"
	"strings"

	"github.com/udisondev/aoserver/internal/courtroom/clientpackets"
	"github.com/udisondev/aoserver/internal/model"
)

// pairSpec is the "<charID>[^<order>]" pairing field.
type pairSpec struct {
	target int
	order  string // front/back marker, empty when absent
}

func parsePairSpec(s string) pairSpec {
	id, order, found := strings.Cut(s, "^")
	spec := pairSpec{target: clientpackets.Int(id)}
	if found {
		spec.order, _, _ = strings.Cut(order, "^")
		spec.order = "^" + spec.order
	}
	return spec
}

func (p pairSpec) String() string {
	return strconv.Itoa(p.target) + p.order
}

// findPartner looks for a joined session in the area that pairs back with
// the speaker from the same position.
func (h *SpeakHandler) findPartner(req *speakRequest, target int) (model.SessionState, bool) {
	self := req.st.CharID
	if target == self || target == model.NoCharacter {
		return model.SessionState{}, false
	}

	var (
		partner model.SessionState
		found   bool
	)
	for _, s := range h.roster.SessionsInArea(req.area.ID()) {
		if s.ID() == req.sessionID {
			continue
		}
		other := s.Snapshot()
		if !other.Joined {
			continue
		}
		if other.PairingWith == self && other.CharID == target && other.Pos == req.next.Pos {
			partner = other
			found = true
		}
	}
	return partner, found
}
