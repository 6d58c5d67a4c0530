// Package orderfeed consumes order intents from a Kafka topic and
// submits them to the matching service. It is the second ingress next
// to the TCP gateway; both funnel through service.Submit, which keeps
// the core single-writer.
package orderfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"mako/domain/book"
	"mako/engine"
	"mako/service"
)

// intent is the JSON shape producers put on the order topic.
type intent struct {
	Type    string `json:"type"` // "new", "modify", "cancel"
	OrderID uint64 `json:"order_id"`
	Owner   uint32 `json:"owner"`
	Side    string `json:"side"` // "bid" or "ask"
	Price   int64  `json:"price"`
	Qty     int64  `json:"qty"`
}

type Feed struct {
	reader *kafka.Reader
	svc    *service.Service
	log    *zap.Logger
}

func New(brokers []string, topic, groupID string, svc *service.Service, log *zap.Logger) *Feed {
	return &Feed{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		svc: svc,
		log: log,
	}
}

// Run consumes until ctx is cancelled. Malformed messages are logged
// and skipped; they are never retried.
func (f *Feed) Run(ctx context.Context) {
	f.log.Info("order feed started", zap.String("topic", f.reader.Config().Topic))

	for {
		msg, err := f.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			f.log.Warn("read message failed", zap.Error(err))
			continue
		}

		cmd, err := decodeIntent(msg.Value)
		if err != nil {
			f.log.Warn("skipping malformed intent",
				zap.Int64("offset", msg.Offset), zap.Error(err))
			continue
		}

		events := f.svc.Submit(cmd)
		f.log.Debug("intent processed",
			zap.Int64("offset", msg.Offset), zap.Int("events", len(events)))
	}
}

func decodeIntent(data []byte) (engine.Command, error) {
	var in intent
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}

	switch in.Type {
	case "new":
		side := book.Ask
		if in.Side == "bid" {
			side = book.Bid
		} else if in.Side != "ask" {
			return nil, fmt.Errorf("orderfeed: bad side %q", in.Side)
		}
		return engine.CmdNew{
			ID:    in.OrderID,
			Owner: in.Owner,
			Side:  side,
			Price: in.Price,
			Qty:   in.Qty,
		}, nil
	case "modify":
		return engine.CmdModify{ID: in.OrderID, Qty: in.Qty}, nil
	case "cancel":
		return engine.CmdCancel{ID: in.OrderID}, nil
	default:
		return nil, fmt.Errorf("orderfeed: bad intent type %q", in.Type)
	}
}

func (f *Feed) Close() error {
	return f.reader.Close()
}
