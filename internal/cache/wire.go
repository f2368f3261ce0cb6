package cache

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/xuyisen-x/oxidice/internal/trace"
)

// EncodeTrace serializes a completed evaluation's trace with msgpack
// (spec.md §5's "Trace serialization"), the teacher compiler's own
// wire-format dependency there used for LSP payloads. This lets a caller
// that offloads rendering to another process transport a trace without
// re-running the engine; it is in-memory encode/decode only, not durable
// storage.
func EncodeTrace(events []trace.Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(events); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeTrace reverses EncodeTrace.
func DecodeTrace(data []byte) ([]trace.Event, error) {
	var events []trace.Event
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}
