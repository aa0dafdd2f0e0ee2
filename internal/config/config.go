package config

import (
	"os"
	"path/filepath"
)

// appDirName is the directory used under the platform config root.
const appDirName = "gopher-midimap"

// Dirs locates the directories that hold controller schemas and bind
// sets, plus the app state file. Builtin dirs ship next to the binary
// and are treated as read-only; user dirs live under the platform
// config root and are where edits land.
type Dirs struct {
	ControllersBuiltin string
	ControllersUser    string
	BindsBuiltin       string
	BindsUser          string
	AppStateFile       string
}

// DefaultDirs resolves the standard directory layout: builtin schemas
// in a config_files directory next to the executable, user schemas
// under os.UserConfigDir().
func DefaultDirs() (Dirs, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return Dirs{}, err
	}
	userRoot := filepath.Join(configHome, appDirName)

	builtinRoot := ""
	if exe, err := os.Executable(); err == nil {
		builtinRoot = filepath.Join(filepath.Dir(exe), "config_files")
	}

	return Dirs{
		ControllersBuiltin: filepath.Join(builtinRoot, "controllers"),
		ControllersUser:    filepath.Join(userRoot, "controllers"),
		BindsBuiltin:       filepath.Join(builtinRoot, "binds"),
		BindsUser:          filepath.Join(userRoot, "binds"),
		AppStateFile:       filepath.Join(userRoot, "app_state.yaml"),
	}, nil
}

// ControllerDirs returns the controller schema search path, builtin
// dirs first.
func (d Dirs) ControllerDirs() []string {
	return []string{d.ControllersBuiltin, d.ControllersUser}
}

// BindsDirs returns the bind set search path, builtin dirs first.
func (d Dirs) BindsDirs() []string {
	return []string{d.BindsBuiltin, d.BindsUser}
}
