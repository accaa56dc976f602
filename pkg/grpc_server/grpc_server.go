package grpc_server

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
)

const defaultShutdownTimeout = 30 * time.Second

type Server struct {
	server   *grpc.Server
	listener net.Listener
	notify   chan error
}

// New starts serving srv on address. The listener is opened before New
// returns, so a busy port fails here rather than through Notify.
func New(srv *grpc.Server, address string) (*Server, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	s := &Server{
		server:   srv,
		listener: listener,
		notify:   make(chan error, 1),
	}

	s.start()

	return s, nil
}

func (s *Server) start() {
	go func() {
		s.notify <- s.server.Serve(s.listener)
		close(s.notify)
	}()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown waits for in-flight calls and stops hard once the timeout passes.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}
}
