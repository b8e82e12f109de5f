package provider

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString decodes a JSON string, number, or null into its textual form.
// Providers are inconsistent about quoting numeric fields.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the decoded text.
func (f FlexString) String() string {
	return string(f)
}
