package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleArgs struct {
	Query string   `json:"query" description:"Search query"`
	Limit *int     `json:"limit" description:"Optional result cap"`
	Tags  []string `json:"tags,omitempty" description:"Omit empty field"`
}

func TestSchemaFromStruct(t *testing.T) {
	props, required := SchemaFromStruct(sampleArgs{})

	assert.Contains(t, props, "query")
	assert.Contains(t, props, "limit")
	assert.Contains(t, props, "tags")

	q, ok := props["query"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "string", q["type"])
	assert.Equal(t, "Search query", q["description"])

	// Pointer and omitempty fields are optional
	assert.ElementsMatch(t, []string{"query"}, required)
}

func TestValidateArgs(t *testing.T) {
	props := map[string]any{
		"x": map[string]any{"type": "integer"},
		"s": map[string]any{"type": "string"},
	}
	required := []string{"x"}

	// Success, including float64-encoded integers from JSON decoding
	assert.NoError(t, ValidateArgs(map[string]any{"x": 5}, props, required))
	assert.NoError(t, ValidateArgs(map[string]any{"x": float64(5)}, props, required))

	// Missing required
	err := ValidateArgs(map[string]any{"s": "hi"}, props, required)
	assert.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "x", vErr.Field)

	// Wrong type
	err = ValidateArgs(map[string]any{"x": "not-int"}, props, required)
	assert.Error(t, err)
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "integer")
}
