package courtroom

import (
	"log/slog"

	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/model"
)

// presentEvidence handles evidence shown in a hidden-CM area. The presented
// entry becomes visible to everyone and every member gets a fresh evidence
// list. Returns the full-list index of the entry, or -1 when the message
// needs no per-recipient evidence index.
func (h *SpeakHandler) presentEvidence(req *speakRequest) int {
	area := req.area
	if area.EvidenceMod() != model.EvidenceHiddenCM || req.presented <= 0 {
		return -1
	}

	real := area.EvidenceIndexByVisibleIndex(req.presented, req.next.Pos, req.st.Has(model.PermissionCM))
	if real < 0 {
		return -1
	}

	area.SetEvidenceOwnerToAll(real)
	for _, s := range h.roster.SessionsInArea(area.ID()) {
		h.sendEvidenceList(s.ID(), area, s.Snapshot())
	}
	return real
}

// sendEvidenceList sends the evidence a session sees from its position.
// Caller must hold the area lock.
func (h *SpeakHandler) sendEvidenceList(sessionID int, area *model.Area, st model.SessionState) {
	visible := area.VisibleEvidence(st.Pos, st.Has(model.PermissionCM))
	if err := h.transport.Send(sessionID, serverpackets.NewLE(visible).Packet()); err != nil {
		slog.Warn("sending evidence list", "session", sessionID, "error", err)
	}
}
