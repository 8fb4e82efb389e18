package models

import (
	"bytes"
	"encoding/json"
)

// marshalRaw encodes v without HTML escaping. Callers that want <, > and &
// escaped still get that from their own encoder.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
