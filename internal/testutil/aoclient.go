package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/udisondev/aoserver/internal/protocol"
)

// AOClient is a minimal AO2 client for integration tests.
type AOClient struct {
	conn   net.Conn
	reader *protocol.Reader
}

// DialAO connects to a courtroom server. The connection is closed when the
// test ends.
func DialAO(t testing.TB, addr string) *AOClient {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dialing %s: %v", addr, err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return &AOClient{conn: conn, reader: protocol.NewReader(conn)}
}

// Send writes one packet built from unescaped values.
func (c *AOClient) Send(header string, values ...string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second)); err != nil {
		return err
	}
	_, err := c.conn.Write(protocol.New(header, values...).Encode())
	return err
}

// ReadPacket reads the next packet, waiting at most timeout.
func (c *AOClient) ReadPacket(timeout time.Duration) (protocol.Packet, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return protocol.Packet{}, err
	}
	return c.reader.ReadPacket()
}

// ReadUntil skips packets until one with header arrives.
func (c *AOClient) ReadUntil(header string, timeout time.Duration) (protocol.Packet, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return protocol.Packet{}, fmt.Errorf("no %s packet within %v", header, timeout)
		}
		pkt, err := c.ReadPacket(remaining)
		if err != nil {
			return protocol.Packet{}, fmt.Errorf("waiting for %s: %w", header, err)
		}
		if pkt.Header == header {
			return pkt, nil
		}
	}
}

// Close closes the connection.
func (c *AOClient) Close() error {
	return c.conn.Close()
}
