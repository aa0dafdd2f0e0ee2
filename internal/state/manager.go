package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/PixPMusic/gopher-midimap/internal/actions"
	"github.com/PixPMusic/gopher-midimap/internal/config"
	"github.com/PixPMusic/gopher-midimap/internal/midi"
	"github.com/PixPMusic/gopher-midimap/internal/schema"
)

// AppState is the persisted selection state between runs.
type AppState struct {
	SelectedControllerName string `yaml:"selected_controller_name,omitempty"`
	SelectedBindsName      string `yaml:"selected_binds_name,omitempty"`
}

// Manager tracks which controller schema and bind set are selected,
// discovers the available documents on disk, and owns the active
// connection. One manager per host application.
type Manager struct {
	appName string
	catalog *actions.Catalog
	adapter midi.Adapter
	dirs    config.Dirs
	log     *zap.Logger

	mu                 sync.Mutex
	selectedController string
	selectedBinds      string
	connected          *midi.ConnectedController
}

// NewManager creates a manager for the given host application. The
// catalog holds the application's available actions; the adapter is
// used for every connection the manager starts.
func NewManager(appName string, catalog *actions.Catalog, adapter midi.Adapter, dirs config.Dirs, log *zap.Logger) *Manager {
	return &Manager{
		appName: appName,
		catalog: catalog,
		adapter: adapter,
		dirs:    dirs,
		log:     log,
	}
}

// AvailableControllers returns the names of all controller schemas
// found in the configured directories.
func (m *Manager) AvailableControllers() ([]string, error) {
	loaded, err := schema.LoadAllControllersFrom(m.dirs.ControllerDirs())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(loaded))
	for _, lc := range loaded {
		names = append(names, lc.Controller.Name)
	}
	return names, nil
}

// AvailableBinds returns the names of the bind sets that target this
// application and the currently selected controller.
func (m *Manager) AvailableBinds() ([]string, error) {
	m.mu.Lock()
	controllerName := m.selectedController
	m.mu.Unlock()

	loaded, err := schema.LoadAllBindsFrom(m.dirs.BindsDirs())
	if err != nil {
		return nil, err
	}
	var names []string
	for _, lb := range loaded {
		if lb.Binds.AppName == m.appName && lb.Binds.ControllerName == controllerName {
			names = append(names, lb.Binds.Name)
		}
	}
	return names, nil
}

// SelectController records the controller schema to use. Takes effect
// on the next StartHandling.
func (m *Manager) SelectController(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedController = name
}

// SelectBinds records the bind set to use. Takes effect on the next
// StartHandling.
func (m *Manager) SelectBinds(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedBinds = name
}

// Connected returns the active connection, or nil when not handling.
func (m *Manager) Connected() *midi.ConnectedController {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// StartHandling loads the selected controller and binds, resolves them
// against the action catalog, and connects to the device. Any previous
// connection is stopped first and is not restored on failure.
func (m *Manager) StartHandling() error {
	m.StopHandling()

	m.mu.Lock()
	controllerName := m.selectedController
	bindsName := m.selectedBinds
	m.mu.Unlock()

	if controllerName == "" {
		return fmt.Errorf("no controller was selected")
	}
	if bindsName == "" {
		return fmt.Errorf("no binds were selected")
	}

	controller, err := m.findController(controllerName)
	if err != nil {
		return err
	}
	binds, err := m.findBinds(bindsName)
	if err != nil {
		return err
	}

	bound, err := actions.Create(binds, controller, m.catalog)
	if err != nil {
		return err
	}

	connected, err := midi.Connect(controller, bound, m.adapter, m.log)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.connected = connected
	m.mu.Unlock()

	m.log.Info("handling started",
		zap.String("controller", controllerName),
		zap.String("binds", bindsName),
	)
	return nil
}

// StopHandling disconnects the active controller, if any. Safe to call
// when nothing is connected.
func (m *Manager) StopHandling() {
	m.mu.Lock()
	connected := m.connected
	m.connected = nil
	m.mu.Unlock()

	if connected != nil {
		connected.Disconnect()
	}
}

// LoadState restores the persisted selections. A missing state file
// leaves the selections empty.
func (m *Manager) LoadState() error {
	data, err := os.ReadFile(m.dirs.AppStateFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var st AppState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("failed to parse %s: %w", m.dirs.AppStateFile, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedController = st.SelectedControllerName
	m.selectedBinds = st.SelectedBindsName
	return nil
}

// SaveState persists the current selections.
func (m *Manager) SaveState() error {
	m.mu.Lock()
	st := AppState{
		SelectedControllerName: m.selectedController,
		SelectedBindsName:      m.selectedBinds,
	}
	m.mu.Unlock()

	data, err := yaml.Marshal(&st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.dirs.AppStateFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(m.dirs.AppStateFile, data, 0644)
}

// findController loads the schema with the given name from the search
// path.
func (m *Manager) findController(name string) (*schema.Controller, error) {
	loaded, err := schema.LoadAllControllersFrom(m.dirs.ControllerDirs())
	if err != nil {
		return nil, err
	}
	for _, lc := range loaded {
		if lc.Controller.Name == name {
			return lc.Controller, nil
		}
	}
	return nil, fmt.Errorf("controller schema %q not found", name)
}

// findBinds loads the bind set with the given name from the search
// path.
func (m *Manager) findBinds(name string) (*schema.Binds, error) {
	loaded, err := schema.LoadAllBindsFrom(m.dirs.BindsDirs())
	if err != nil {
		return nil, err
	}
	for _, lb := range loaded {
		if lb.Binds.Name == name {
			return lb.Binds, nil
		}
	}
	return nil, fmt.Errorf("bind set %q not found", name)
}
