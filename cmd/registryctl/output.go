package main

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	}
	return errors.Errorf("unknown output format %q", format)
}

// render writes v as indented JSON or as YAML. YAML goes through the JSON
// encoding first so both formats share the same field names.
func render(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}

	if format == formatJSON {
		_, err = w.Write(append(data, '\n'))
		return err
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return errors.Wrap(err, "failed to encode YAML output")
	}
	return enc.Close()
}
