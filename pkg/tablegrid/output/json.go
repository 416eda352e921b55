// Package output serializes documents and table grids and renders grids
// as text tables.
package output

import (
	"encoding/json"

	"sigs.k8s.io/yaml"
)

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToYAML serializes v to YAML through its JSON form, so json tags and
// MarshalJSON methods apply.
func ToYAML(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// FromYAML decodes YAML (or JSON, which is valid YAML) into v through its
// JSON form.
func FromYAML(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
