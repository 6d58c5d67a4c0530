package tcp

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mako/domain/book"
	"mako/engine"
	"mako/infra/sequence"
	"mako/service"
	"mako/wire"
)

func newTestServer() *Server {
	eng := engine.New(book.New(), engine.WallClock{})
	svc := service.New(eng, sequence.New(0), nil, zap.NewNop())
	return NewServer(svc, zap.NewNop())
}

// pipeConn runs handleConn against an in-memory pipe.
func pipeConn(t *testing.T, s *Server) net.Conn {
	t.Helper()
	c, srv := net.Pipe()
	done := make(chan struct{})
	go func() {
		s.handleConn(srv)
		close(done)
	}()
	t.Cleanup(func() {
		_ = c.Close()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("handleConn did not exit")
		}
	})
	return c
}

func TestGatewayRoundTrip(t *testing.T) {
	s := newTestServer()
	c := pipeConn(t, s)

	_, err := c.Write(wire.EncodeNew(7, 1, book.Bid, 100, 5))
	require.NoError(t, err)

	ack := make([]byte, 9)
	_, err = io.ReadFull(c, ack)
	require.NoError(t, err)
	assert.Equal(t, wire.TagAckNew, ack[0])

	// Crossing order: ack then one trade frame.
	_, err = c.Write(wire.EncodeNew(8, 2, book.Ask, 95, 5))
	require.NoError(t, err)

	out := make([]byte, 9+29)
	_, err = io.ReadFull(c, out)
	require.NoError(t, err)
	assert.Equal(t, wire.TagAckNew, out[0])
	assert.Equal(t, wire.TagTrade, out[9])
}

func TestGatewaySplitFrames(t *testing.T) {
	s := newTestServer()
	c := pipeConn(t, s)

	frame := wire.EncodeNew(7, 1, book.Ask, 100, 5)
	_, err := c.Write(frame[:10])
	require.NoError(t, err)
	_, err = c.Write(frame[10:])
	require.NoError(t, err)

	ack := make([]byte, 9)
	_, err = io.ReadFull(c, ack)
	require.NoError(t, err)
	assert.Equal(t, wire.TagAckNew, ack[0])
}

func TestGatewayDropsOnGarbage(t *testing.T) {
	s := newTestServer()
	c := pipeConn(t, s)

	_, err := c.Write([]byte{0xFF, 1, 2, 3})
	require.NoError(t, err)

	// Server closes its end; the next read reports EOF.
	buf := make([]byte, 1)
	_, err = io.ReadFull(c, buf)
	assert.Error(t, err)
}
