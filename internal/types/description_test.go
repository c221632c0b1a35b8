package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescription_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Description
	}{
		{name: "single text block", input: `"Built the billing service"`, want: Description{"Built the billing service"}},
		{name: "empty text block", input: `""`, want: Description{}},
		{name: "list of statements", input: `["Built APIs", "  ", "Led team"]`, want: Description{"Built APIs", "Led team"}},
		{name: "null", input: `null`, want: Description{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Description
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDescription_UnmarshalJSON_InvalidShape(t *testing.T) {
	var d Description
	err := json.Unmarshal([]byte(`{"text": "x"}`), &d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string or a list of strings")
}

func TestDescription_MarshalJSON_AlwaysList(t *testing.T) {
	entry := ExperienceEntry{Company: "Acme"}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":[]`)

	entry.Description = NewDescription("Shipped v2")
	data, err = json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":["Shipped v2"]`)
}

func TestExperienceEntry_DecodesBothShapes(t *testing.T) {
	payload := `[
		{"company": "A", "position": "Engineer", "description": "Owned deploys"},
		{"company": "B", "position": "Engineer", "description": ["Cut latency 40%", "Mentored 3 engineers"]}
	]`

	var entries []ExperienceEntry
	require.NoError(t, json.Unmarshal([]byte(payload), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, Description{"Owned deploys"}, entries[0].Description)
	assert.Len(t, entries[1].Description, 2)
	assert.Equal(t, "Cut latency 40% Mentored 3 engineers", entries[1].Description.Text())
}
