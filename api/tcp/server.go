// Package tcp is the wire gateway: it accepts client connections,
// decodes inbound frames into commands, submits them to the service,
// and writes the resulting event frames back to the submitting client.
package tcp

import (
	"context"
	"errors"
	"io"
	"net"

	"go.uber.org/zap"

	"mako/service"
	"mako/wire"
)

type Server struct {
	svc *service.Service
	log *zap.Logger
}

func NewServer(svc *service.Service, log *zap.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Serve accepts connections until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = lis.Close()
	}()

	s.log.Info("gateway listening", zap.String("addr", addr))

	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warn("accept failed", zap.Error(err))
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	s.log.Debug("client connected", zap.String("remote", remote))

	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)

	for {
		n, err := conn.Read(chunk)
		if err != nil {
			if err != io.EOF {
				s.log.Debug("read failed", zap.String("remote", remote), zap.Error(err))
			}
			return
		}
		buf = append(buf, chunk[:n]...)

		cmds, consumed, derr := wire.Decode(buf)
		// Keep the tail fragment at the front for the next read.
		buf = append(buf[:0], buf[consumed:]...)

		for _, cmd := range cmds {
			events := s.svc.Submit(cmd)
			var out []byte
			for _, ev := range events {
				out = wire.EncodeEvent(out, ev)
			}
			if _, err := conn.Write(out); err != nil {
				s.log.Debug("write failed", zap.String("remote", remote), zap.Error(err))
				return
			}
		}

		if derr != nil {
			// The stream cannot be resynchronized after garbage.
			s.log.Warn("protocol error, dropping client",
				zap.String("remote", remote), zap.Error(derr))
			return
		}
	}
}
