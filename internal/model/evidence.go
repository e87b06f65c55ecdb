package model

import "strings"

// EvidenceOwnerAll marks evidence visible from every position.
const EvidenceOwnerAll = "all"

// EvidenceMod is an area's evidence ownership policy.
type EvidenceMod int

const (
	EvidenceFFA EvidenceMod = iota
	EvidenceModOnly
	EvidenceCMOnly
	// EvidenceHiddenCM hides evidence from positions other than its owners
	// until it has been presented.
	EvidenceHiddenCM
)

// ParseEvidenceMod parses the config spelling of an evidence policy.
// Unknown values fall back to EvidenceFFA.
func ParseEvidenceMod(s string) EvidenceMod {
	switch strings.ToLower(s) {
	case "mod":
		return EvidenceModOnly
	case "cm":
		return EvidenceCMOnly
	case "hidden_cm", "hiddencm":
		return EvidenceHiddenCM
	default:
		return EvidenceFFA
	}
}

func (m EvidenceMod) String() string {
	switch m {
	case EvidenceFFA:
		return "ffa"
	case EvidenceModOnly:
		return "mod"
	case EvidenceCMOnly:
		return "cm"
	case EvidenceHiddenCM:
		return "hidden_cm"
	default:
		return "unknown"
	}
}

// Evidence is one entry of an area's evidence list.
type Evidence struct {
	Name        string
	Description string
	Image       string
	// Owner is "" or EvidenceOwnerAll for everyone, otherwise a comma
	// separated list of positions allowed to see the entry.
	Owner string
}

// VisibleTo reports whether a session standing at pos may see the entry.
func (e Evidence) VisibleTo(pos string) bool {
	if e.Owner == "" || strings.EqualFold(e.Owner, EvidenceOwnerAll) {
		return true
	}
	for _, owner := range strings.Split(e.Owner, ",") {
		if strings.EqualFold(strings.TrimSpace(owner), pos) {
			return true
		}
	}
	return false
}
