package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "plain", Stringify("plain"))
	assert.Equal(t, "boom", Stringify(errors.New("boom")))
	assert.Equal(t, "5s", Stringify(5*time.Second)) // fmt.Stringer

	// Structured values are JSON-encoded
	assert.JSONEq(t, `{"value":7}`, Stringify(map[string]any{"value": 7}))
	assert.Equal(t, "[1,2,3]", Stringify([]int{1, 2, 3}))
	assert.Equal(t, "42", Stringify(42))
}
