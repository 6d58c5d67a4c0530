// Package wire implements the binary framing between clients and the
// matching core. All integers are little-endian. Inbound frames start
// with a type byte followed by client id (u32) and order id (u64);
// outbound frames start with a single ASCII tag byte.
package wire

import (
	"encoding/binary"
	"fmt"

	"mako/domain/book"
	"mako/engine"
)

// Inbound message types.
const (
	MsgNew    byte = 0
	MsgModify byte = 1
	MsgCancel byte = 2
)

// Frame sizes, type byte included.
const (
	sizeHeader = 1 + 4 + 8       // type, client id, order id
	SizeNew    = sizeHeader + 13 // + side u8, price u64, qty u32
	SizeModify = sizeHeader + 4  // + new qty u32
	SizeCancel = sizeHeader
)

// Outbound event tags.
const (
	TagAckNew    byte = 'A'
	TagAckModify byte = 'M'
	TagAckCancel byte = 'C'
	TagReject    byte = 'R'
	TagTrade     byte = 'T'
)

func frameSize(t byte) int {
	switch t {
	case MsgNew:
		return SizeNew
	case MsgModify:
		return SizeModify
	case MsgCancel:
		return SizeCancel
	}
	return 0
}

// Decode consumes every complete frame in buf and returns the decoded
// commands plus the number of bytes consumed; a trailing partial frame
// is left for the caller to retry once more bytes arrive. An unknown
// type byte is a protocol error: the stream cannot be resynchronized.
func Decode(buf []byte) ([]engine.Command, int, error) {
	var cmds []engine.Command
	consumed := 0

	for len(buf) > 0 {
		t := buf[0]
		need := frameSize(t)
		if need == 0 {
			return cmds, consumed, fmt.Errorf("wire: unknown message type 0x%02x", t)
		}
		if len(buf) < need {
			break
		}

		client := binary.LittleEndian.Uint32(buf[1:5])
		order := binary.LittleEndian.Uint64(buf[5:13])

		switch t {
		case MsgNew:
			side := book.Ask
			if buf[13] == 0 {
				side = book.Bid
			}
			price := binary.LittleEndian.Uint64(buf[14:22])
			qty := binary.LittleEndian.Uint32(buf[22:26])
			cmds = append(cmds, engine.CmdNew{
				ID:    order,
				Owner: client,
				Side:  side,
				Price: int64(price),
				Qty:   int64(qty),
			})

		case MsgModify:
			qty := binary.LittleEndian.Uint32(buf[13:17])
			cmds = append(cmds, engine.CmdModify{ID: order, Qty: int64(qty)})

		case MsgCancel:
			cmds = append(cmds, engine.CmdCancel{ID: order})
		}

		buf = buf[need:]
		consumed += need
	}
	return cmds, consumed, nil
}

// EncodeEvent appends the wire form of ev to dst and returns the
// extended slice.
func EncodeEvent(dst []byte, ev engine.Event) []byte {
	switch e := ev.(type) {
	case engine.AckNew:
		dst = append(dst, TagAckNew)
		dst = binary.LittleEndian.AppendUint64(dst, e.ID)

	case engine.AckModify:
		dst = append(dst, TagAckModify)
		dst = binary.LittleEndian.AppendUint64(dst, e.ID)

	case engine.AckCancel:
		dst = append(dst, TagAckCancel)
		dst = binary.LittleEndian.AppendUint64(dst, e.ID)

	case engine.Reject:
		// The reason tag travels in logs and on Kafka, not on this
		// fixed-size frame.
		dst = append(dst, TagReject)
		dst = binary.LittleEndian.AppendUint64(dst, e.ID)

	case engine.Trade:
		dst = append(dst, TagTrade)
		dst = binary.LittleEndian.AppendUint64(dst, e.MakerID)
		dst = binary.LittleEndian.AppendUint64(dst, e.TakerID)
		dst = binary.LittleEndian.AppendUint64(dst, uint64(e.Price))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(e.Qty))

	default:
		panic(fmt.Sprintf("wire: unhandled event type %T", ev))
	}
	return dst
}

// EncodeNew builds an inbound NEW frame. Used by clients and tests.
func EncodeNew(client uint32, order uint64, side book.Side, price int64, qty uint32) []byte {
	buf := make([]byte, 0, SizeNew)
	buf = append(buf, MsgNew)
	buf = binary.LittleEndian.AppendUint32(buf, client)
	buf = binary.LittleEndian.AppendUint64(buf, order)
	if side == book.Bid {
		buf = append(buf, 0)
	} else {
		buf = append(buf, 1)
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(price))
	buf = binary.LittleEndian.AppendUint32(buf, qty)
	return buf
}

// EncodeModify builds an inbound MODIFY frame.
func EncodeModify(client uint32, order uint64, qty uint32) []byte {
	buf := make([]byte, 0, SizeModify)
	buf = append(buf, MsgModify)
	buf = binary.LittleEndian.AppendUint32(buf, client)
	buf = binary.LittleEndian.AppendUint64(buf, order)
	buf = binary.LittleEndian.AppendUint32(buf, qty)
	return buf
}

// EncodeCancel builds an inbound CANCEL frame.
func EncodeCancel(client uint32, order uint64) []byte {
	buf := make([]byte, 0, SizeCancel)
	buf = append(buf, MsgCancel)
	buf = binary.LittleEndian.AppendUint32(buf, client)
	buf = binary.LittleEndian.AppendUint64(buf, order)
	return buf
}
