package courtroom

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aoserver/internal/courtroom/serverpackets"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
	"github.com/udisondev/aoserver/internal/testutil"
)

func newTestClient(t *testing.T, id, areaID, queueSize int) (*Client, *testutil.MockConn) {
	t.Helper()
	conn := testutil.NewMockConn("203.0.113.7:40000")
	sess := model.NewSession(id, "ipid")
	sess.Update(func(s *model.SessionState) { s.AreaID = areaID })
	return NewClient(conn, sess, queueSize, time.Second), conn
}

// drain returns the packets queued on a client whose writePump is not running.
func drain(t *testing.T, c *Client) []protocol.Packet {
	t.Helper()
	var out []protocol.Packet
	for {
		select {
		case raw := <-c.sendCh:
			pkt, err := protocol.Decode(string(bytes.TrimSuffix(raw, []byte("%"))))
			require.NoError(t, err)
			out = append(out, pkt)
		default:
			return out
		}
	}
}

func TestWritePump_SinglePacket(t *testing.T) {
	client, server := testutil.PipeConn(t)

	c := NewClient(client, model.NewSession(0, "ipid"), 16, time.Second)
	go c.writePump()
	defer c.CloseAsync()

	pkt := protocol.New("CT", "server", "hello", "1")
	require.NoError(t, c.Send(pkt))

	require.NoError(t, server.SetReadDeadline(time.Now().Add(2*time.Second)))
	got, err := protocol.NewReader(server).ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, pkt, got)
}

func TestWritePump_BatchDrain(t *testing.T) {
	client, server := testutil.PipeConn(t)

	c := NewClient(client, model.NewSession(0, "ipid"), 16, time.Second)
	// Queue before the pump starts so the packets go out in one batch.
	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, c.Send(protocol.New("CT", "server", msg, "1")))
	}
	go c.writePump()
	defer c.CloseAsync()

	require.NoError(t, server.SetReadDeadline(time.Now().Add(2*time.Second)))
	r := protocol.NewReader(server)
	for _, want := range []string{"one", "two", "three"} {
		pkt, err := r.ReadPacket()
		require.NoError(t, err)
		assert.Equal(t, want, pkt.Values()[1])
	}
}

func TestClientSend_QueueFull(t *testing.T) {
	c, _ := newTestClient(t, 0, 0, 2)

	pkt := protocol.New("CT", "server", "x", "1")
	require.NoError(t, c.Send(pkt))
	require.NoError(t, c.Send(pkt))

	assert.ErrorIs(t, c.Send(pkt), errSendQueueFull)
	assert.ErrorIs(t, c.Send(pkt), errClientClosed, "a stuck client is dropped")
}

func TestClient_IP(t *testing.T) {
	c, conn := newTestClient(t, 0, 0, 4)
	assert.Equal(t, "203.0.113.7", c.IP())

	require.NoError(t, c.Close())
	assert.True(t, conn.Closed())
}

func TestClientManager_Roster(t *testing.T) {
	areas := []*model.Area{
		model.NewArea(0, "Lobby", openPolicy(), model.EvidenceFFA, 0),
		model.NewArea(1, "Courtroom", openPolicy(), model.EvidenceFFA, 0),
	}
	cm := NewClientManager("test", areas)

	a, _ := newTestClient(t, cm.NextSessionID(), 0, 4)
	b, _ := newTestClient(t, cm.NextSessionID(), 1, 4)
	c, _ := newTestClient(t, cm.NextSessionID(), 1, 4)
	cm.Register(a)
	cm.Register(b)
	cm.Register(c)

	assert.Equal(t, 3, cm.Count())
	assert.Len(t, cm.SessionsInArea(1), 2)

	s, ok := cm.Session(b.SessionID())
	require.True(t, ok)
	assert.Same(t, b.Session(), s)

	area, ok := cm.Area(1)
	require.True(t, ok)
	assert.Equal(t, "Courtroom", area.Name())
	_, ok = cm.Area(2)
	assert.False(t, ok)

	cm.Unregister(b.SessionID())
	assert.Equal(t, 2, cm.Count())
	_, ok = cm.Session(b.SessionID())
	assert.False(t, ok)
}

func TestClientManager_Transport(t *testing.T) {
	areas := []*model.Area{
		model.NewArea(0, "Lobby", openPolicy(), model.EvidenceFFA, 0),
		model.NewArea(1, "Courtroom", openPolicy(), model.EvidenceFFA, 0),
	}
	cm := NewClientManager("aoserver", areas)

	lobby, _ := newTestClient(t, 0, 0, 8)
	court, _ := newTestClient(t, 1, 1, 8)
	cm.Register(lobby)
	cm.Register(court)

	cm.Broadcast(1, protocol.New("MS", "hello"))
	assert.Empty(t, drain(t, lobby))
	got := drain(t, court)
	require.Len(t, got, 1)
	assert.Equal(t, "MS", got[0].Header)

	cm.ServerMessage(0, "You cannot speak while muted.")
	got = drain(t, lobby)
	require.Len(t, got, 1)
	assert.Equal(t, serverpackets.HeaderCT, got[0].Header)
	assert.Equal(t, []string{"aoserver", "You cannot speak while muted.", "1"}, got[0].Values())

	cm.ServerMessageArea(1, "moved on")
	assert.Len(t, drain(t, court), 1)
	assert.Empty(t, drain(t, lobby))

	assert.Error(t, cm.Send(7, protocol.New("MS")))
}

func TestWritePump_MockConn(t *testing.T) {
	c, conn := newTestClient(t, 0, 0, 4)
	go c.writePump()
	defer c.CloseAsync()

	require.NoError(t, c.Send(protocol.New("CT", "server", "a#b", "1")))
	testutil.WaitFor(t, func() bool { return conn.WriteCount() == 1 }, 2*time.Second)

	assert.Equal(t, "CT#server#a<num>b#1#%", string(conn.Written()))
}
