package courtroom

import (
	"context"
	"errors"
	"log/slog"

	"github.com/udisondev/aoserver/internal/courtroom/clientpackets"
	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
)

// Handler routes decoded client packets.
type Handler struct {
	clientManager *ClientManager
	speak         *SpeakHandler
	characters    []string
}

// NewHandler creates a new packet handler.
func NewHandler(clientManager *ClientManager, speak *SpeakHandler, characters []string) *Handler {
	return &Handler{
		clientManager: clientManager,
		speak:         speak,
		characters:    characters,
	}
}

// HandlePacket dispatches one packet. A returned error closes the connection;
// rejected IC messages and unknown headers do not.
func (h *Handler) HandlePacket(ctx context.Context, client *Client, pkt protocol.Packet) error {
	switch pkt.Header {
	case clientpackets.HeaderID:
		h.handleClientVersion(client, pkt)
	case clientpackets.HeaderCC:
		h.handleCharacterSelect(client, pkt)
	case clientpackets.HeaderMS:
		return h.handleSpeak(ctx, client, pkt)
	default:
		slog.Debug("unhandled packet",
			"header", pkt.Header,
			"client", client.IP())
	}
	return nil
}

func (h *Handler) handleClientVersion(client *Client, pkt protocol.Packet) {
	p, err := clientpackets.ParseClientVersion(pkt.Values())
	if err != nil {
		slog.Warn("parsing ID", "client", client.IP(), "error", err)
		return
	}

	client.Session().Update(func(s *model.SessionState) {
		s.Version = p.Version
	})
	slog.Debug("client version",
		"client", client.IP(),
		"software", p.Software,
		"release", p.Version.Release,
		"major", p.Version.Major)
}

// handleCharacterSelect picks a character and joins the session's area.
func (h *Handler) handleCharacterSelect(client *Client, pkt protocol.Packet) {
	p, err := clientpackets.ParseCharacterSelect(pkt.Values())
	if err != nil {
		slog.Warn("parsing CC", "client", client.IP(), "error", err)
		return
	}
	if p.CharID < 0 || p.CharID >= len(h.characters) {
		slog.Warn("character out of range", "client", client.IP(), "char_id", p.CharID)
		return
	}

	sess := client.Session()
	sess.Update(func(s *model.SessionState) {
		s.CharID = p.CharID
		s.Character = h.characters[p.CharID]
		s.Joined = true
	})

	if err := client.Send(serverpackets.NewPV(sess.ID(), p.CharID).Packet()); err != nil {
		slog.Warn("sending PV", "client", client.IP(), "error", err)
		return
	}

	st := sess.Snapshot()
	if area, ok := h.clientManager.Area(st.AreaID); ok {
		area.Lock()
		h.speak.sendEvidenceList(sess.ID(), area, st)
		area.Unlock()
	}
}

func (h *Handler) handleSpeak(ctx context.Context, client *Client, pkt protocol.Packet) error {
	err := h.speak.HandleSpeak(ctx, client.SessionID(), pkt.Values())
	if errors.Is(err, ErrRejected) {
		slog.Debug("ic message rejected",
			"session", client.SessionID(),
			"client", client.IP(),
			"reason", err)
		return nil
	}
	return err
}
