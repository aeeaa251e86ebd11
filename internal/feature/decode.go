package feature

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jd-develop/geodesie-de-bureau/internal/codes"
)

// windowRadius is how many bytes of context a SchemaError keeps on each side
// of the failing offset.
const windowRadius = 100

// SchemaError reports a payload that does not match the expected feature
// collection shape, including unmapped code values.
type SchemaError struct {
	// Feature is the index of the failing feature, or -1 outside the features array.
	Feature int
	// Offset is a byte offset into the payload near the failure.
	Offset int64
	// Field names the property or code table involved, when known.
	Field  string
	Reason string
	// Window is the raw payload text around Offset.
	Window string
	Err    error
}

func (e *SchemaError) Error() string {
	loc := fmt.Sprintf("offset %d", e.Offset)
	if e.Feature >= 0 {
		loc = fmt.Sprintf("feature %d, %s", e.Feature, loc)
	}
	if e.Field != "" {
		loc += ", field " + e.Field
	}
	if e.Err != nil {
		return fmt.Sprintf("feature: schema error (%s): %s: %v", loc, e.Reason, e.Err)
	}
	return fmt.Sprintf("feature: schema error (%s): %s", loc, e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

type rawFeature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties Properties        `json:"properties"`
}

// Decode parses a bounding-box feature collection.
func Decode(data []byte) ([]Feature, error) {
	d := &decoder{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	return d.collection()
}

type decoder struct {
	data []byte
	dec  *json.Decoder
}

func (d *decoder) collection() ([]Feature, error) {
	if err := d.expectDelim('{', -1); err != nil {
		return nil, err
	}

	var (
		features []Feature
		seen     bool
	)
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.fail(-1, d.dec.InputOffset(), "read key", err)
		}
		key, _ := tok.(string)

		switch key {
		case "type":
			start := d.dec.InputOffset()
			var typ string
			if err := d.dec.Decode(&typ); err != nil {
				return nil, d.failValue(-1, start, "decode collection type", err)
			}
			if typ != "FeatureCollection" {
				return nil, d.fail(-1, start, fmt.Sprintf("collection type is %q", typ), nil)
			}
		case "features":
			seen = true
			features, err = d.features()
			if err != nil {
				return nil, err
			}
		default:
			start := d.dec.InputOffset()
			var skip json.RawMessage
			if err := d.dec.Decode(&skip); err != nil {
				return nil, d.failValue(-1, start, "skip "+key, err)
			}
		}
	}

	if err := d.expectDelim('}', -1); err != nil {
		return nil, err
	}
	if !seen {
		return nil, d.fail(-1, d.dec.InputOffset(), "missing features array", nil)
	}
	return features, nil
}

func (d *decoder) features() ([]Feature, error) {
	if err := d.expectDelim('[', -1); err != nil {
		return nil, err
	}

	out := []Feature{}
	for i := 0; d.dec.More(); i++ {
		start := d.dec.InputOffset()
		var raw rawFeature
		if err := d.dec.Decode(&raw); err != nil {
			return nil, d.failValue(i, start, "decode feature", err)
		}
		f, err := raw.feature()
		if err != nil {
			return nil, d.fail(i, start, "invalid feature", err)
		}
		if name := f.Properties.missingCode(); name != "" {
			se := d.fail(i, start, "missing required code", nil)
			se.Field = name
			return nil, se
		}
		out = append(out, f)
	}

	if err := d.expectDelim(']', -1); err != nil {
		return nil, err
	}
	return out, nil
}

func (raw rawFeature) feature() (Feature, error) {
	if raw.Type != "Feature" {
		return Feature{}, eris.Errorf("feature: type is %q", raw.Type)
	}
	if raw.Geometry == nil {
		return Feature{}, eris.New("feature: missing geometry")
	}
	g, err := raw.Geometry.Decode()
	if err != nil {
		return Feature{}, eris.Wrap(err, "feature: decode geometry")
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return Feature{}, eris.Errorf("feature: geometry type is %q, want Point", raw.Geometry.Type)
	}
	if len(p.FlatCoords()) < 2 {
		return Feature{}, eris.New("feature: empty point geometry")
	}
	return Feature{Longitude: p.X(), Latitude: p.Y(), Properties: raw.Properties}, nil
}

func (d *decoder) expectDelim(want json.Delim, feature int) error {
	start := d.dec.InputOffset()
	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return d.fail(feature, start, fmt.Sprintf("expected %q", want), err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return d.fail(feature, start, fmt.Sprintf("expected %q, got %v", want, tok), nil)
	}
	return nil
}

// fail builds a SchemaError for a failure at an absolute offset, such as one
// reported by Token.
func (d *decoder) fail(feature int, offset int64, reason string, err error) *SchemaError {
	se := &SchemaError{Feature: feature, Offset: offset, Reason: reason, Err: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		se.Offset = syntaxErr.Offset
	}
	return d.withWindow(se)
}

// failValue builds a SchemaError for a value that began at start. Offsets
// carried by encoding/json errors from Decode are relative to that value.
func (d *decoder) failValue(feature int, start int64, reason string, err error) *SchemaError {
	se := &SchemaError{Feature: feature, Offset: start, Reason: reason, Err: err}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		codeErr   *codes.UnknownCodeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		se.Offset = start + syntaxErr.Offset
	case errors.As(err, &typeErr):
		se.Offset = start + typeErr.Offset
		se.Field = typeErr.Field
	case errors.As(err, &codeErr):
		se.Field = codeErr.Table
	}
	return d.withWindow(se)
}

func (d *decoder) withWindow(se *SchemaError) *SchemaError {
	se.Offset = min(max(se.Offset, 0), int64(len(d.data)))
	lo := max(se.Offset-windowRadius, 0)
	hi := min(se.Offset+windowRadius, int64(len(d.data)))
	se.Window = string(d.data[lo:hi])
	return se
}
