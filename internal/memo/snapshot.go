package memo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serializes memos as a JSON array of strings.
// A nil or empty list encodes as "[]".
func EncodeSnapshot(memos []string) string {
	if memos == nil {
		memos = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a []string cannot fail.
	_ = enc.Encode(memos)
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// DecodeSnapshot parses a JSON array of strings. JSON null decodes to an empty list.
func DecodeSnapshot(raw string) ([]string, error) {
	var memos []string
	if err := json.Unmarshal([]byte(raw), &memos); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return memos, nil
}
