package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const promptSchema = `{
  "type": "object",
  "required": ["prompt"],
  "properties": {
    "prompt": {"type": "string", "maxLength": 10},
    "num_images": {"type": "integer", "minimum": 1}
  }
}`

func TestCheckJSONInputValid(t *testing.T) {
	assert.Empty(t, CheckJSONInput(promptSchema, `{"prompt":"a cat","num_images":1}`))
}

func TestCheckJSONInputEmpty(t *testing.T) {
	assert.Nil(t, CheckJSONInput(promptSchema, ""))
	assert.Nil(t, CheckJSONInput(promptSchema, "   "))
}

func TestCheckJSONInputNoSchema(t *testing.T) {
	assert.Nil(t, CheckJSONInput("", `{"anything":true}`))
}

func TestCheckJSONInputMalformed(t *testing.T) {
	assert.Equal(t, []string{NotJSONWarning}, CheckJSONInput(promptSchema, `{invalid`))
	assert.Equal(t, []string{NotJSONWarning}, CheckJSONInput("", `{invalid`))
}

func TestCheckJSONInputMismatch(t *testing.T) {
	warnings := CheckJSONInput(promptSchema, `{"num_images":0}`)
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.True(t, strings.HasPrefix(w, "- "))
	}
	joined := strings.Join(warnings, "\n")
	assert.Contains(t, joined, "prompt")
	assert.Contains(t, joined, "num_images")
}

func TestCheckJSONInputBadSchema(t *testing.T) {
	warnings := CheckJSONInput(`{"type": 12}`, `{}`)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "endpoint schema is invalid")
}
