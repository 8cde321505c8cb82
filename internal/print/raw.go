// Package print renders webctl command output in the machine-readable
// formats selected with -o.
package print

import (
	"encoding/json"
	"io"

	"sigs.k8s.io/yaml"
)

// RawJSON writes v as indented JSON, trailing newline included.
func RawJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RawYAML writes v as YAML via its JSON form, so json struct tags decide
// the field names in both output formats.
func RawYAML(out io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
