package testutil

import (
	"net"
	"sync"
	"time"
)

// MockConn is a net.Conn that records writes and never blocks.
type MockConn struct {
	mu         sync.Mutex
	written    []byte
	writeCount int
	closed     bool
	remote     string
}

// NewMockConn creates a MockConn whose remote address is remote.
func NewMockConn(remote string) *MockConn {
	return &MockConn{remote: remote}
}

// Read always reports no data.
func (m *MockConn) Read([]byte) (int, error) {
	return 0, nil
}

func (m *MockConn) Write(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, b...)
	m.writeCount++
	return len(b), nil
}

// Written returns a copy of everything written so far.
func (m *MockConn) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.written...)
}

// WriteCount returns the number of Write calls.
func (m *MockConn) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCount
}

func (m *MockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockConn) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockConn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 27016}
}

func (m *MockConn) RemoteAddr() net.Addr {
	addr, err := net.ResolveTCPAddr("tcp", m.remote)
	if err != nil {
		return &net.TCPAddr{}
	}
	return addr
}

func (m *MockConn) SetDeadline(time.Time) error      { return nil }
func (m *MockConn) SetReadDeadline(time.Time) error  { return nil }
func (m *MockConn) SetWriteDeadline(time.Time) error { return nil }
