package courtroom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/aoserver/internal/config"
	"github.com/udisondev/aoserver/internal/crypto"
	"github.com/udisondev/aoserver/internal/model"
	"github.com/udisondev/aoserver/internal/protocol"
)

// Server accepts AO2 client connections.
type Server struct {
	cfg           config.Server
	clientManager *ClientManager
	handler       *Handler

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a new Server.
func NewServer(cfg config.Server, clientManager *ClientManager, handler *Handler) *Server {
	return &Server{
		cfg:           cfg,
		clientManager: clientManager,
		handler:       handler,
	}
}

// Addr returns the address the server is listening on.
// Returns nil if the server hasn't started yet.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ClientManager returns the client manager for this server.
func (s *Server) ClientManager() *ClientManager {
	return s.clientManager
}

// Close closes the listener.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Run begins listening on cfg.BindAddress:cfg.Port and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is done.
// Used for testing with custom listeners.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	slog.Info("courtroom server started", "address", ln.Addr())

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("failed to accept new connection", "error", err)
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetKeepAlive(true); err != nil {
				slog.Warn("set keepalive failed", "error", err)
			}
			if err := tcpConn.SetKeepAlivePeriod(30 * time.Second); err != nil {
				slog.Warn("set keepalive period failed", "error", err)
			}
		}

		wg.Go(func() {
			s.handleConnection(ctx, conn)
		})
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	sess := model.NewSession(
		s.clientManager.NextSessionID(),
		crypto.IPID(conn.RemoteAddr().String(), s.cfg.IPIDSalt),
	)
	client := NewClient(conn, sess, s.cfg.SendQueueSize, s.cfg.WriteTimeout)

	s.clientManager.Register(client)
	defer func() {
		s.clientManager.Unregister(sess.ID())
		slog.Debug("client unregistered", "session", sess.ID())
	}()

	go client.writePump()
	defer client.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	slog.Info("new client connection", "remote", client.IP(), "ipid", sess.IPID(), "session", sess.ID())

	readTimeout := s.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	reader := protocol.NewReader(conn)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			slog.Warn("setting read deadline", "client", client.IP(), "error", err)
			return
		}

		pkt, err := reader.ReadPacket()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				slog.Info("client disconnected", "session", sess.ID(), "client", client.IP())
			} else {
				slog.Warn("reading packet", "client", client.IP(), "error", err)
			}
			return
		}

		if err := s.handler.HandlePacket(ctx, client, pkt); err != nil {
			slog.Error("packet handling error", "error", err, "client", client.IP())
			return
		}
	}
}
