// Package codes holds the closed enumerations used by the IGN leveling
// benchmark payloads. Each enumeration decodes from a fixed wire value (single
// letter, zero-padded number or numeric code) and carries a display label.
package codes

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
)

// UnknownCodeError reports a wire value that no variant of a table recognises.
type UnknownCodeError struct {
	Table string
	Value string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("codes: unknown %s value %q", e.Table, e.Value)
}

type entry[T comparable] struct {
	value T
	label string
	wires []string
}

// w lists the wire values of an entry; the first one is canonical.
func w(values ...string) []string { return values }

// table maps wire values onto the variants of one enumeration. Several wire
// values may decode onto the same variant; the first listed is the one written
// back out.
type table[T comparable] struct {
	name    string
	numeric bool
	// optional tables decode "" and null onto the zero variant.
	optional bool

	decode map[string]T
	wire   map[T]string
	labels map[T]string
}

func newTable[T comparable](name string, numeric, optional bool, entries []entry[T]) *table[T] {
	t := &table[T]{
		name:     name,
		numeric:  numeric,
		optional: optional,
		decode:   make(map[string]T),
		wire:     make(map[T]string),
		labels:   make(map[T]string),
	}
	for _, e := range entries {
		if _, dup := t.labels[e.value]; dup {
			panic(fmt.Sprintf("codes: %s: duplicate variant %v", name, e.value))
		}
		if len(e.wires) == 0 {
			panic(fmt.Sprintf("codes: %s: variant %v has no wire value", name, e.value))
		}
		t.labels[e.value] = e.label
		t.wire[e.value] = e.wires[0]
		for _, wv := range e.wires {
			if _, dup := t.decode[wv]; dup {
				panic(fmt.Sprintf("codes: %s: wire value %q mapped twice", name, wv))
			}
			t.decode[wv] = e.value
		}
	}
	if optional {
		var zero T
		t.decode[""] = zero
		t.wire[zero] = ""
		t.labels[zero] = ""
	}
	return t
}

// Decode returns the variant for a wire value.
func (t *table[T]) Decode(wire string) (T, error) {
	v, ok := t.decode[wire]
	if !ok {
		var zero T
		return zero, &UnknownCodeError{Table: t.name, Value: wire}
	}
	return v, nil
}

// Label returns the display label, or "" for a value outside the table.
func (t *table[T]) Label(v T) string { return t.labels[v] }

// Wire returns the canonical wire value, or "" for a value outside the table.
func (t *table[T]) Wire(v T) string { return t.wire[v] }

func (t *table[T]) unmarshalJSON(data []byte) (T, error) {
	v, _, err := t.unmarshalWire(data)
	return v, err
}

// unmarshalWire decodes a JSON code and also returns the wire value it was
// read from.
func (t *table[T]) unmarshalWire(data []byte) (T, string, error) {
	var zero T
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		if t.optional {
			return zero, "", nil
		}
		return zero, "", &UnknownCodeError{Table: t.name, Value: "null"}
	}

	// Numeric codes are documented as numbers but sometimes arrive quoted, so
	// both forms are accepted for every table.
	wire := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &wire); err != nil {
			return zero, "", eris.Wrapf(err, "codes: %s: decode string", t.name)
		}
	}
	v, err := t.Decode(wire)
	if err != nil {
		return zero, "", err
	}
	return v, wire, nil
}

func (t *table[T]) marshalJSON(v T) ([]byte, error) {
	wv, ok := t.wire[v]
	if !ok {
		var zero T
		if v == zero {
			return []byte("null"), nil
		}
		return nil, &UnknownCodeError{Table: t.name, Value: fmt.Sprint(v)}
	}
	if t.numeric {
		return []byte(wv), nil
	}
	return json.Marshal(wv)
}
