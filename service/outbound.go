package service

import (
	"encoding/json"
	"fmt"

	"mako/engine"
)

// Outbound is the JSON shape of a journalled / broadcast event.
type Outbound struct {
	V       int    `json:"v"`
	Seq     uint64 `json:"seq"`
	Type    string `json:"type"`
	OrderID uint64 `json:"order_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
	MakerID uint64 `json:"maker_id,omitempty"`
	TakerID uint64 `json:"taker_id,omitempty"`
	Maker   uint32 `json:"maker_owner,omitempty"`
	Taker   uint32 `json:"taker_owner,omitempty"`
	Price   int64  `json:"price,omitempty"`
	Qty     int64  `json:"qty,omitempty"`
}

const outboundVersion = 1

func encodeOutbound(seq uint64, ev engine.Event) ([]byte, error) {
	out := Outbound{V: outboundVersion, Seq: seq}

	switch e := ev.(type) {
	case engine.AckNew:
		out.Type = "ack-new"
		out.OrderID = e.ID
	case engine.AckModify:
		out.Type = "ack-modify"
		out.OrderID = e.ID
	case engine.AckCancel:
		out.Type = "ack-cancel"
		out.OrderID = e.ID
	case engine.Reject:
		out.Type = "reject"
		out.OrderID = e.ID
		out.Reason = e.Reason
	case engine.Trade:
		out.Type = "trade"
		out.MakerID = e.MakerID
		out.TakerID = e.TakerID
		out.Maker = e.MakerOwner
		out.Taker = e.TakerOwner
		out.Price = e.Price
		out.Qty = e.Qty
	default:
		return nil, fmt.Errorf("service: unhandled event type %T", ev)
	}
	return json.Marshal(out)
}
