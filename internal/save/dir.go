package save

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rotisserie/eris"
)

// DefaultDir returns the platform configuration directory of the
// application:
//
//	macOS    ~/Library/Preferences/org.jd-develop.geodesie
//	Windows  %APPDATA%\jd-develop\geodesie
//	others   ~/.config/jd-develop/geodesie
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil && runtime.GOOS != "windows" {
		return "", eris.Wrap(err, "save: home directory")
	}
	return dirFor(runtime.GOOS, home, os.Getenv("APPDATA"))
}

// Dir returns DefaultDir, creating it when missing.
func Dir() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "save: create config dir")
	}
	return dir, nil
}

func dirFor(goos, home, appData string) (string, error) {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Preferences", "org.jd-develop.geodesie"), nil
	case "windows":
		if appData == "" {
			return "", eris.New("save: APPDATA is not set")
		}
		return filepath.Join(appData, "jd-develop", "geodesie"), nil
	default:
		return filepath.Join(home, ".config", "jd-develop", "geodesie"), nil
	}
}
