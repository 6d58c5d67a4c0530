package service

import (
	"sync"

	"go.uber.org/zap"

	"mako/engine"
	"mako/infra/journal"
	"mako/infra/sequence"
)

// Service wraps the engine with outbound sequencing and journalling.
type Service struct {
	mu  sync.Mutex
	eng *engine.Engine
	seq *sequence.Sequencer
	jnl *journal.Journal
	log *zap.Logger
}

// New wires all dependencies. jnl may be nil to run without an event
// journal (and therefore without Kafka broadcast).
func New(eng *engine.Engine, seq *sequence.Sequencer, jnl *journal.Journal, log *zap.Logger) *Service {
	return &Service{
		eng: eng,
		seq: seq,
		jnl: jnl,
		log: log,
	}
}

// Submit feeds one command through the engine and journals every
// resulting event. The internal mutex is the per-instrument
// serialization point: the core itself is single-writer and lock-free.
func (s *Service) Submit(cmd engine.Command) []engine.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.eng.Handle(cmd)
	for _, ev := range events {
		seq := s.seq.Next()
		if s.jnl == nil {
			continue
		}
		payload, err := encodeOutbound(seq, ev)
		if err != nil {
			s.log.Error("encode outbound event", zap.Uint64("seq", seq), zap.Error(err))
			continue
		}
		if err := s.jnl.Append(seq, payload); err != nil {
			// Delivery is best-effort; the command result is already
			// final and still returned to the submitter.
			s.log.Warn("journal append failed", zap.Uint64("seq", seq), zap.Error(err))
		}
	}
	return events
}

// BestBid returns the top-of-book bid price, 0 when the side is empty.
func (s *Service) BestBid() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.BestBid()
}

// BestAsk returns the top-of-book ask price, 0 when the side is empty.
func (s *Service) BestAsk() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.BestAsk()
}
