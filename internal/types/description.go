package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Description holds the statements of an experience entry.
// On the wire it may be a single text block or a list of bullet strings;
// in memory it is always a list.
type Description []string

// NewDescription builds a Description from a single text block.
// An empty block yields an empty list.
func NewDescription(text string) Description {
	text = strings.TrimSpace(text)
	if text == "" {
		return Description{}
	}
	return Description{text}
}

// Text joins all statements with a single space.
func (d Description) Text() string {
	return strings.Join(d, " ")
}

// MarshalJSON always encodes a list, never null.
func (d Description) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(d))
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (d *Description) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*d = Description{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to decode description text: %w", err)
		}
		*d = NewDescription(text)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("description must be a string or a list of strings: %w", err)
	}
	out := make(Description, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	*d = out
	return nil
}
