package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolateConfig points configuration, save file and cache at temp dirs.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck

	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())
	t.Setenv("GEODESIE_SAVE_DIR", filepath.Join(dir, "saves"))
	t.Setenv("GEODESIE_CACHE_PATH", filepath.Join(dir, "cache.db"))
	t.Setenv("GEODESIE_LOG_LEVEL", "error")
	return dir
}

// fakeIGN serves the search, locator and bbox endpoints for one benchmark.
func fakeIGN(t *testing.T) *httptest.Server {
	t.Helper()
	fixture, err := os.ReadFile(filepath.Join(origWD(t), "testdata", "bbox.json"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /fiches", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch {
		case r.PostForm.Get("h_recherche") != "":
			w.Write([]byte("2.17493 48.80391|T'.D.S3 - 50\n")) //nolint:errcheck
		case strings.HasPrefix(r.PostForm.Get("repere_ajax"), "T'.D.S3"):
			w.Write([]byte("452592\x00T'.D.S3 - 50")) //nolint:errcheck
		default:
			w.Write(nil) //nolint:errcheck
		}
	})
	mux.HandleFunc("POST /bbox/2.1/48.8/json/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture) //nolint:errcheck
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Setenv("GEODESIE_IGN_SEARCH_URL", srv.URL+"/fiches")
	t.Setenv("GEODESIE_IGN_BBOX_BASE_URL", srv.URL+"/bbox")
	return srv
}

var startWD string

func init() {
	startWD, _ = os.Getwd()
}

func origWD(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, startWD)
	return startWD
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	if args == nil {
		args = []string{} // nil makes cobra read os.Args
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootMatricule, rootFormat, rootSave, rootNoColor, rootDiagnostics = "", "text", false, false, false
		visitDate, visitState, visitNotes, visitOther = "", "", "", ""
		batchFile = ""
		rootCmd.SetArgs([]string{})
	})
	err := rootCmd.Execute()
	return out.String(), err
}
