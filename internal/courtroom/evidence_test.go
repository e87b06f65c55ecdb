package courtroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/model"
)

// hiddenCourt builds a hidden-CM area with three entries:
//
//	0 Knife  pro
//	1 Badge  def
//	2 Photo  def
//
// and four sessions: Phoenix at def, Edgeworth at pro, Maya at wit and
// Franziska at jud holding CM.
func hiddenCourt(t *testing.T) (*harness, *model.Area) {
	t.Helper()
	h := newHarness(t, testIC())
	a := h.addArea(openPolicy(), model.EvidenceHiddenCM)
	a.AddEvidence(model.Evidence{Name: "Knife", Owner: "pro"})
	a.AddEvidence(model.Evidence{Name: "Badge", Owner: "def"})
	a.AddEvidence(model.Evidence{Name: "Photo", Owner: "def"})

	h.join(0, 0, 0, "def")
	h.join(1, 0, 1, "pro")
	h.join(2, 0, 2, "wit")
	h.join(3, 0, 3, "jud", func(s *model.SessionState) { s.Permissions |= model.PermissionCM })
	return h, a
}

func TestHandleSpeak_HiddenEvidencePresented(t *testing.T) {
	h, a := hiddenCourt(t)

	// Phoenix sees Badge and Photo; the second one is Photo.
	require.NoError(t, h.speak(0, with(msFields("Take that!"), 11, "2")))

	assert.Empty(t, h.transport.broadcastsOf(serverpackets.HeaderMS), "each member gets its own copy")

	photo, ok := a.Evidence(2)
	require.True(t, ok)
	assert.Equal(t, model.EvidenceOwnerAll, photo.Owner)

	want := map[int]string{
		0: "2", // Badge, Photo
		1: "2", // Knife, Photo
		2: "1", // Photo
		3: "3", // everything
	}
	for id, idx := range want {
		ms := h.transport.sentOf(id, serverpackets.HeaderMS)
		require.Len(t, ms, 1, "session %d", id)
		assert.Equal(t, idx, ms[0].Values()[11], "session %d", id)
		assert.Equal(t, "Take that!", ms[0].Values()[4])

		assert.Len(t, h.transport.sentOf(id, serverpackets.HeaderLE), 1, "session %d gets a fresh list", id)
	}

	le := h.transport.sentOf(2, serverpackets.HeaderLE)[0]
	assert.Equal(t, []string{"Photo&&"}, le.Values())
}

func TestHandleSpeak_HiddenEvidenceNotPresented(t *testing.T) {
	h, _ := hiddenCourt(t)

	require.NoError(t, h.speak(0, msFields("Nothing to show.")))

	assert.Len(t, h.transport.broadcastsOf(serverpackets.HeaderMS), 1)
	assert.Equal(t, "0", h.lastMS(t)[11])
	assert.Empty(t, h.transport.sent)
}

func TestHandleSpeak_HiddenEvidenceUsesNewPosition(t *testing.T) {
	h, a := hiddenCourt(t)

	// Moving to pro while presenting the first entry shows the Knife.
	require.NoError(t, h.speak(0, with(with(msFields("This knife!"), 5, "pro"), 11, "1")))

	knife, _ := a.Evidence(0)
	assert.Equal(t, model.EvidenceOwnerAll, knife.Owner)
	badge, _ := a.Evidence(1)
	assert.Equal(t, "def", badge.Owner)

	ms := h.transport.sentOf(2, serverpackets.HeaderMS)
	require.Len(t, ms, 1)
	assert.Equal(t, "1", ms[0].Values()[11])
}

func TestHandleSpeak_FFAEvidenceBroadcast(t *testing.T) {
	h := newHarness(t, testIC())
	a := h.addArea(openPolicy(), model.EvidenceFFA)
	a.AddEvidence(model.Evidence{Name: "Badge", Owner: "def"})
	h.join(0, 0, 0, "def")
	h.join(1, 0, 1, "pro")

	require.NoError(t, h.speak(0, with(msFields("Take that!"), 11, "1")))

	assert.Equal(t, "1", h.lastMS(t)[11])
	assert.Empty(t, h.transport.sentOf(1, serverpackets.HeaderMS))
	badge, _ := a.Evidence(0)
	assert.Equal(t, "def", badge.Owner)
}
