package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemas_ValidJSON(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			data, err := Get(name)
			require.NoError(t, err)

			var schemaObj map[string]any
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema should be valid JSON")

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			assert.NotEmpty(t, schemaObj["required"])
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("resume_plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}
