package render

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/jd-develop/geodesie-de-bureau/internal/model"
)

// Format selects how records are written.
type Format int

const (
	// FormatText is the human-readable record sheet.
	FormatText Format = iota + 1
	// FormatJSON is one indented JSON document per record.
	FormatJSON
	// FormatYAML is one YAML document per record.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, eris.Errorf("unknown format: %q (valid: text, json, yaml)", s)
	}
}

// JSON renders the record as indented JSON with the save-file field names.
func JSON(b model.Benchmark) (string, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "render: marshal json")
	}
	return string(data) + "\n", nil
}

// YAML renders the record as a YAML document.
func YAML(b model.Benchmark) (string, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return "", eris.Wrap(err, "render: marshal yaml")
	}
	return string(data), nil
}

// Record renders b in the given format. st only applies to FormatText.
func Record(b model.Benchmark, f Format, st Style) (string, error) {
	switch f {
	case FormatJSON:
		return JSON(b)
	case FormatYAML:
		return YAML(b)
	case FormatText:
		return Text(b, st), nil
	default:
		return "", eris.Errorf("render: unsupported format %d", int(f))
	}
}
