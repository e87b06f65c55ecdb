package clientpackets

import (
	"fmt"
	"strings"

	"github.com/udisondev/aoserver/internal/model"
)

// HeaderID is the header of the client version report.
//
// Packet structure (C2S "ID"):
//   - software string  client name, e.g. "AO2"
//   - version  string  "release.major.minor"
const HeaderID = "ID"

// HeaderCC is the header of the character selection request.
//
// Packet structure (C2S "CC"):
//   - player  string  ignored
//   - charID  int     index into the server character list
//   - hdid    string  ignored
const HeaderCC = "CC"

// ClientVersion is a parsed ID packet.
type ClientVersion struct {
	Software string
	Version  model.ClientVersion
}

// ParseClientVersion parses an ID packet.
func ParseClientVersion(fields []string) (*ClientVersion, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("ID: want 2 fields, got %d", len(fields))
	}

	parts := strings.Split(fields[1], ".")
	var v model.ClientVersion
	if len(parts) > 0 {
		v.Release = Int(parts[0])
	}
	if len(parts) > 1 {
		v.Major = Int(parts[1])
	}
	if len(parts) > 2 {
		v.Minor = Int(parts[2])
	}

	return &ClientVersion{Software: fields[0], Version: v}, nil
}

// CharacterSelect is a parsed CC packet.
type CharacterSelect struct {
	CharID int
}

// ParseCharacterSelect parses a CC packet.
func ParseCharacterSelect(fields []string) (*CharacterSelect, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("CC: want at least 2 fields, got %d", len(fields))
	}
	return &CharacterSelect{CharID: Int(fields[1])}, nil
}
