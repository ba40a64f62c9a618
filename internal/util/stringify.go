package util

import (
	"encoding/json"
	"fmt"
)

// Stringify renders an arbitrary value as text for inclusion in a tool or
// user message. Strings pass through unchanged, structured values are JSON
// encoded, and anything the encoder rejects falls back to %v formatting.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
