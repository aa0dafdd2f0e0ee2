package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// document is any model that can be persisted as a YAML file.
type document interface {
	Validate() error
}

// LoadedController pairs a controller schema with the file it came from.
type LoadedController struct {
	Controller *Controller
	Path       string
}

// LoadedBinds pairs a bind set with the file it came from.
type LoadedBinds struct {
	Binds *Binds
	Path  string
}

// LoadControllerFrom reads and validates a controller schema from a YAML file.
func LoadControllerFrom(path string) (*Controller, error) {
	var c Controller
	if err := loadYAML(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadBindsFrom reads and validates a bind set from a YAML file.
func LoadBindsFrom(path string) (*Binds, error) {
	var b Binds
	if err := loadYAML(path, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadAllControllersFrom loads every YAML file found in the given
// directories. Directories that do not exist are skipped.
func LoadAllControllersFrom(dirs []string) ([]LoadedController, error) {
	paths, err := listYAMLFiles(dirs)
	if err != nil {
		return nil, err
	}
	loaded := make([]LoadedController, 0, len(paths))
	for _, path := range paths {
		c, err := LoadControllerFrom(path)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, LoadedController{Controller: c, Path: path})
	}
	return loaded, nil
}

// LoadAllBindsFrom loads every YAML file found in the given
// directories. Directories that do not exist are skipped.
func LoadAllBindsFrom(dirs []string) ([]LoadedBinds, error) {
	paths, err := listYAMLFiles(dirs)
	if err != nil {
		return nil, err
	}
	loaded := make([]LoadedBinds, 0, len(paths))
	for _, path := range paths {
		b, err := LoadBindsFrom(path)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, LoadedBinds{Binds: b, Path: path})
	}
	return loaded, nil
}

// SaveTo writes the controller schema to a YAML file, creating parent
// directories as needed.
func (c *Controller) SaveTo(path string) error {
	return saveYAML(path, c)
}

// SaveTo writes the bind set to a YAML file, creating parent
// directories as needed.
func (b *Binds) SaveTo(path string) error {
	return saveYAML(path, b)
}

// SaveCopyTo writes the bind set into dir under the file name of path,
// picking a uuid-suffixed name if the plain name is already taken.
// Returns the path it wrote to.
func (b *Binds) SaveCopyTo(path, dir string) (string, error) {
	dest := copyDestination(path, dir)
	if err := saveYAML(dest, b); err != nil {
		return "", err
	}
	return dest, nil
}

// SaveCopyTo writes the controller schema into dir under the file name
// of path, picking a uuid-suffixed name if the plain name is already
// taken. Returns the path it wrote to.
func (c *Controller) SaveCopyTo(path, dir string) (string, error) {
	dest := copyDestination(path, dir)
	if err := saveYAML(dest, c); err != nil {
		return "", err
	}
	return dest, nil
}

func loadYAML(path string, out document) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return out.Validate()
}

func saveYAML(path string, in document) error {
	if err := in.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// listYAMLFiles returns the YAML files in the given directories, in
// directory order then name order within each directory.
func listYAMLFiles(dirs []string) ([]string, error) {
	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := strings.ToLower(entry.Name())
			if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return paths, nil
}

// copyDestination picks a non-colliding file name in dir for a copy of
// the document at path.
func copyDestination(path, dir string) string {
	base := filepath.Base(path)
	dest := filepath.Join(dir, base)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s %s%s", stem, uuid.NewString(), ext))
	}
}
