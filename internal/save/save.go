// Package save reads and writes the save file holding the benchmarks a user
// looked up and the visits they made.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/jd-develop/geodesie-de-bureau/internal/codes"
	"github.com/jd-develop/geodesie-de-bureau/internal/model"
)

// FileName is the name of the save file inside a save directory.
const FileName = "save.json"

// Object sources.
const (
	SourceIGN   = model.NetworkIGNLeveling
	SourceOther = "autre"
)

// File is the content of a save file.
type File struct {
	// Options are kept as written; no option is interpreted yet.
	Options map[string]any `json:"options"`
	Objects []Object       `json:"objets"`
	Visits  []Visit        `json:"visites"`
}

// Object is a saved object, either a benchmark of the IGN network or an
// object entered by hand.
type Object struct {
	Source    string           `json:"source"`
	Benchmark *model.Benchmark `json:"repere,omitempty"`
	Other     *Other           `json:"autre,omitempty"`
}

// Other is an object that no supported network describes.
type Other struct {
	ID    string `json:"id"`
	Name  string `json:"nom"`
	Notes string `json:"notes,omitempty"`
}

// ObjectID implements model.Identified.
func (o Other) ObjectID() string { return SourceOther + "/" + o.ID }

// ObjectID identifies the object, or returns "" for an empty one.
func (o Object) ObjectID() string {
	switch {
	case o.Benchmark != nil:
		return o.Benchmark.ObjectID()
	case o.Other != nil:
		return o.Other.ObjectID()
	default:
		return ""
	}
}

// Visit records a trip to a saved object.
type Visit struct {
	ID       string      `json:"id"`
	ObjectID string      `json:"objet"`
	Date     string      `json:"date"`
	State    codes.State `json:"etat,omitempty"`
	Notes    string      `json:"notes,omitempty"`
}

// NotSavedError reports an operation on an object absent from the save file.
type NotSavedError struct {
	ObjectID string
}

func (e *NotSavedError) Error() string {
	return fmt.Sprintf("save: object %s is not saved", e.ObjectID)
}

// New returns an empty save file.
func New() *File {
	return &File{Options: map[string]any{}, Objects: []Object{}, Visits: []Visit{}}
}

// Path returns the save file path of save name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name, FileName)
}

// Load reads the save file at path. A missing file gives an empty save.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "save: read")
	}

	f := New()
	if err := json.Unmarshal(data, f); err != nil {
		return nil, eris.Wrapf(err, "save: decode %s", path)
	}
	if f.Options == nil {
		f.Options = map[string]any{}
	}
	if f.Objects == nil {
		f.Objects = []Object{}
	}
	if f.Visits == nil {
		f.Visits = []Visit{}
	}
	return f, nil
}

// Write stores f at path, creating parent directories. The previous file is
// replaced atomically.
func Write(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return eris.Wrap(err, "save: encode")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "save: create dir")
	}
	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return eris.Wrap(err, "save: create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "save: write temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "save: sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "save: close temp file")
	}
	return eris.Wrap(os.Rename(tmp.Name(), path), "save: replace file")
}

// AddBenchmark saves b, replacing an earlier copy of the same benchmark. It
// reports whether b was new.
func (f *File) AddBenchmark(b model.Benchmark) bool {
	obj := Object{Source: SourceIGN, Benchmark: &b}
	for i := range f.Objects {
		if f.Objects[i].ObjectID() == obj.ObjectID() {
			f.Objects[i] = obj
			return false
		}
	}
	f.Objects = append(f.Objects, obj)
	return true
}

// AddOther saves an object entered by hand under a fresh identifier.
func (f *File) AddOther(name, notes string) Other {
	o := Other{ID: uuid.New().String(), Name: name, Notes: notes}
	f.Objects = append(f.Objects, Object{Source: SourceOther, Other: &o})
	return o
}

// Object returns the saved object with the given identifier.
func (f *File) Object(objectID string) (Object, bool) {
	for _, o := range f.Objects {
		if o.ObjectID() == objectID {
			return o, true
		}
	}
	return Object{}, false
}

// Benchmarks returns the saved IGN benchmarks in save order.
func (f *File) Benchmarks() []model.Benchmark {
	out := []model.Benchmark{}
	for _, o := range f.Objects {
		if o.Benchmark != nil {
			out = append(out, *o.Benchmark)
		}
	}
	return out
}

// AddVisit records a visit of a saved object on date and returns it. An
// empty date means today.
func (f *File) AddVisit(objectID, date string, state codes.State, notes string) (Visit, error) {
	if _, ok := f.Object(objectID); !ok {
		return Visit{}, &NotSavedError{ObjectID: objectID}
	}
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return Visit{}, eris.Wrapf(err, "save: visit date %q", date)
	}

	v := Visit{ID: uuid.New().String(), ObjectID: objectID, Date: date, State: state, Notes: notes}
	f.Visits = append(f.Visits, v)
	return v, nil
}

// VisitsOf returns the visits of an object in recording order.
func (f *File) VisitsOf(objectID string) []Visit {
	out := []Visit{}
	for _, v := range f.Visits {
		if v.ObjectID == objectID {
			out = append(out, v)
		}
	}
	return out
}
