package courtroom

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/iclog"
	"github.com/udisondev/aoserver/internal/model"
)

// dispatch sends the accepted message, arms the flood guards and returns
// the audit event for it. evidence is the full-list index from
// presentEvidence; when it is not negative every recipient gets its own
// evidence index.
func (h *SpeakHandler) dispatch(req *speakRequest, evidence int) iclog.Event {
	area := req.area

	if evidence >= 0 {
		h.sendCustomized(area, req.msg, evidence)
	} else {
		h.transport.Broadcast(area.ID(), serverpackets.NewMS(req.msg).Packet())
	}

	area.SetLastIC(req.msg)

	now := h.now()
	area.Floodguard().Arm(now, h.cfg.MessageFloodguard)
	h.floodguard.Arm(now, h.cfg.GlobalMessageFloodguard)

	return iclog.Event{
		Time:      now,
		Character: req.st.Character,
		ShowName:  req.next.ShowName,
		OOCName:   req.st.OOCName,
		IPID:      req.sess.IPID(),
		AreaID:    area.ID(),
		AreaName:  area.Name(),
		Message:   req.next.LastMessage,
	}
}

// sendCustomized sends every area member a copy of msg whose evidence index
// points into that member's own visible list. Caller must hold the area lock.
func (h *SpeakHandler) sendCustomized(area *model.Area, msg model.SpeakMessage, evidence int) {
	var g errgroup.Group

	for _, s := range h.roster.SessionsInArea(area.ID()) {
		st := s.Snapshot()
		out := msg
		out.Evidence = area.VisibleIndexByEvidenceIndex(evidence, st.Pos, st.Has(model.PermissionCM))

		id := s.ID()
		pkt := serverpackets.NewMS(out).Packet()
		g.Go(func() error {
			if err := h.transport.Send(id, pkt); err != nil {
				return fmt.Errorf("sending to session %d: %w", id, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("customized ic broadcast incomplete", "area", area.Name(), "error", err)
	}
}
