package courtroom

import (
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
)

// Default write queue / timeout constants.
// Overridden by config values when available.
const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
	defaultReadTimeout   = 300 * time.Second
)

var (
	errSendQueueFull = errors.New("send queue full")
	errClientClosed  = errors.New("client closed")
)

// Client is one TCP connection and the session it carries.
type Client struct {
	conn    net.Conn
	ip      string
	session *model.Session

	// Per-client write queue drained by writePump.
	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	writeTimeout time.Duration
}

// NewClient creates client state for conn.
func NewClient(conn net.Conn, session *model.Session, sendQueueSize int, writeTimeout time.Duration) *Client {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		host = conn.RemoteAddr().String()
	}
	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	return &Client{
		conn:         conn,
		ip:           host,
		session:      session,
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		writeTimeout: writeTimeout,
	}
}

// Conn returns the underlying network connection.
func (c *Client) Conn() net.Conn {
	return c.conn
}

// IP returns the client's remote IP address.
func (c *Client) IP() string {
	return c.ip
}

// Session returns the session carried by the connection.
func (c *Client) Session() *model.Session {
	return c.session
}

// SessionID returns the session identifier.
func (c *Client) SessionID() int {
	return c.session.ID()
}

// writePump is the dedicated writer goroutine of the client. Queued packets
// are batched into one writev when several are pending.
func (c *Client) writePump() {
	bufs := make(net.Buffers, 0, 64)

	for {
		select {
		case pkt, ok := <-c.sendCh:
			if !ok {
				return
			}

			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				slog.Warn("set write deadline failed", "client", c.ip, "error", err)
				return
			}

			queued := len(c.sendCh)
			if queued == 0 {
				if _, err := c.conn.Write(pkt); err != nil {
					slog.Warn("write failed", "client", c.ip, "error", err)
					return
				}
				continue
			}

			bufs = bufs[:0]
			bufs = append(bufs, pkt)
			for range queued {
				bufs = append(bufs, <-c.sendCh)
			}
			if _, err := bufs.WriteTo(c.conn); err != nil {
				slog.Warn("batch write failed", "client", c.ip, "error", err)
				return
			}

		case <-c.closeCh:
			return
		}
	}
}

// Send queues a packet for async delivery.
// Non-blocking: a full queue means a stuck client, which gets disconnected.
func (c *Client) Send(pkt protocol.Packet) error {
	select {
	case <-c.closeCh:
		return errClientClosed
	default:
	}

	select {
	case c.sendCh <- pkt.Encode():
		return nil
	default:
		slog.Warn("send queue full, disconnecting slow client", "client", c.ip)
		c.CloseAsync()
		return errSendQueueFull
	}
}

// CloseAsync signals the writePump to stop without blocking.
// Safe to call multiple times.
func (c *Client) CloseAsync() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
	})
}

// Close closes the connection and stops the writePump.
func (c *Client) Close() error {
	c.CloseAsync()
	return c.conn.Close()
}
