package save

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jd-develop/geodesie-de-bureau/internal/codes"
	"github.com/jd-develop/geodesie-de-bureau/internal/model"
)

func benchmark(cid int64, altitude string) model.Benchmark {
	return model.Benchmark{
		Matricule:      "T'.D.S3 - 50",
		CID:            cid,
		Altitude:       altitude,
		AltitudeSystem: codes.SystemNGFIGN1969,
		AltitudeType:   codes.AltitudeNormal,
		State:          codes.StateGood,
		Type:           codes.TypeBoundaryMarker,
		RouteSide:      codes.SideLeft,
		GPSUsability:   codes.GPSUndocumented,
	}
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "default", FileName))
	require.NoError(t, err)
	assert.Empty(t, f.Objects)
	assert.NotNil(t, f.Objects)
	assert.NotNil(t, f.Visits)
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	path := Path(t.TempDir(), "default")

	f := New()
	f.Options["theme"] = "sombre"
	assert.True(t, f.AddBenchmark(benchmark(452592, "125,719")))
	other := f.AddOther("Borne du jardin", "")
	_, err := f.AddVisit("ign-nivf/452592", "2024-05-01", codes.StateGood, "RAS")
	require.NoError(t, err)

	require.NoError(t, Write(path, f))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, got)
	assert.Equal(t, "sombre", got.Options["theme"])

	o, ok := got.Object(other.ObjectID())
	require.True(t, ok)
	assert.Equal(t, SourceOther, o.Source)
	assert.Equal(t, "Borne du jardin", o.Other.Name)
}

func TestWriteLoad_KeepsRawAltitudeCode(t *testing.T) {
	path := Path(t.TempDir(), "default")
	b := benchmark(429495, "97,113")
	b.AltitudeType = codes.AltitudeOrthometric
	b.AltitudeTypeCode = "14"

	f := New()
	f.AddBenchmark(b)
	require.NoError(t, Write(path, f))

	got, err := Load(path)
	require.NoError(t, err)
	o, ok := got.Object(b.ObjectID())
	require.True(t, ok)
	require.NotNil(t, o.Benchmark)
	assert.Equal(t, codes.AltitudeOrthometric, o.Benchmark.AltitudeType)
	assert.Equal(t, "14", o.Benchmark.AltitudeTypeCode)
}

func TestWrite_Layout(t *testing.T) {
	path := Path(t.TempDir(), "default")
	f := New()
	f.AddBenchmark(benchmark(452592, "125,719"))
	require.NoError(t, Write(path, f))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "options")
	assert.Contains(t, raw, "objets")
	assert.Contains(t, raw, "visites")

	var objs []map[string]any
	require.NoError(t, json.Unmarshal(raw["objets"], &objs))
	require.Len(t, objs, 1)
	assert.Equal(t, "ign-nivf", objs[0]["source"])
	repere := objs[0]["repere"].(map[string]any)
	assert.Equal(t, "E", repere["etat"])
	assert.Equal(t, "G", repere["voie_cote"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestAddBenchmark_Upsert(t *testing.T) {
	f := New()
	assert.True(t, f.AddBenchmark(benchmark(452592, "125,719")))
	assert.True(t, f.AddBenchmark(benchmark(429495, "131,402")))
	assert.False(t, f.AddBenchmark(benchmark(452592, "125,720")))

	got := f.Benchmarks()
	require.Len(t, got, 2)
	assert.Equal(t, int64(452592), got[0].CID)
	assert.Equal(t, "125,720", got[0].Altitude)
	assert.Equal(t, int64(429495), got[1].CID)
}

func TestAddVisit(t *testing.T) {
	f := New()
	f.AddBenchmark(benchmark(452592, "125,719"))

	v, err := f.AddVisit("ign-nivf/452592", "", codes.StateBad, "")
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, time.Now().Format(time.DateOnly), v.Date)

	_, err = f.AddVisit("ign-nivf/452592", "2024-02-30", 0, "")
	assert.Error(t, err)

	_, err = f.AddVisit("ign-nivf/1", "2024-05-01", 0, "")
	var nse *NotSavedError
	require.True(t, errors.As(err, &nse))
	assert.Equal(t, "ign-nivf/1", nse.ObjectID)

	assert.Len(t, f.VisitsOf("ign-nivf/452592"), 1)
	assert.Empty(t, f.VisitsOf("ign-nivf/1"))
}

func TestDirFor(t *testing.T) {
	tests := []struct {
		goos    string
		home    string
		appData string
		want    string
	}{
		{"darwin", "/Users/jean", "", filepath.Join("/Users/jean", "Library", "Preferences", "org.jd-develop.geodesie")},
		{"linux", "/home/jean", "", filepath.Join("/home/jean", ".config", "jd-develop", "geodesie")},
		{"freebsd", "/home/jean", "", filepath.Join("/home/jean", ".config", "jd-develop", "geodesie")},
		{"windows", "", `C:\Users\jean\AppData\Roaming`, filepath.Join(`C:\Users\jean\AppData\Roaming`, "jd-develop", "geodesie")},
	}
	for _, tt := range tests {
		got, err := dirFor(tt.goos, tt.home, tt.appData)
		require.NoError(t, err, tt.goos)
		assert.Equal(t, tt.want, got, tt.goos)
	}

	_, err := dirFor("windows", "", "")
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "default", "save.json"), Path("/cfg", "default"))
}
