package cache

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errEmptyRecord = errors.New("empty record")

// encode marshals v. encoding/json writes map keys in sorted order, so equal
// content always produces identical bytes.
func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func decode(data []byte, dst any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errEmptyRecord
	}
	return json.Unmarshal(data, dst)
}
