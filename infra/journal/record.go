package journal

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// State tracks delivery of one journalled event.
type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	default:
		return "UNKNOWN"
	}
}

// Record is the journal envelope around an opaque event payload.
type Record struct {
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

// Proto field numbers for the record envelope.
const (
	fieldState       = 1
	fieldRetries     = 2
	fieldLastAttempt = 3
	fieldPayload     = 4
)

var errCorruptRecord = errors.New("journal: corrupt record")

func encodeRecord(r Record) []byte {
	buf := make([]byte, 0, 16+len(r.Payload))
	buf = protowire.AppendTag(buf, fieldState, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(r.State))
	buf = protowire.AppendTag(buf, fieldRetries, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(r.Retries))
	buf = protowire.AppendTag(buf, fieldLastAttempt, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(r.LastAttempt))
	buf = protowire.AppendTag(buf, fieldPayload, protowire.BytesType)
	buf = protowire.AppendBytes(buf, r.Payload)
	return buf
}

func decodeRecord(b []byte) (Record, error) {
	var r Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Record{}, errCorruptRecord
		}
		b = b[n:]

		switch {
		case num == fieldState && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Record{}, errCorruptRecord
			}
			r.State = State(v)
			b = b[n:]
		case num == fieldRetries && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Record{}, errCorruptRecord
			}
			r.Retries = uint32(v)
			b = b[n:]
		case num == fieldLastAttempt && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Record{}, errCorruptRecord
			}
			r.LastAttempt = int64(v)
			b = b[n:]
		case num == fieldPayload && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return Record{}, errCorruptRecord
			}
			r.Payload = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Record{}, errCorruptRecord
			}
			b = b[n:]
		}
	}
	return r, nil
}
