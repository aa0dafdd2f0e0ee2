package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-midimap/internal/actions"
	"github.com/PixPMusic/gopher-midimap/internal/config"
	"github.com/PixPMusic/gopher-midimap/internal/midi"
	"github.com/PixPMusic/gopher-midimap/internal/state"
)

const appName = "gopher-midimap"

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	dirs, err := config.DefaultDirs()
	if err != nil {
		log.Fatal("failed to resolve config directories", zap.Error(err))
	}

	catalog, err := actions.NewCatalog(demoActions(log))
	if err != nil {
		log.Fatal("failed to build action catalog", zap.Error(err))
	}

	adapter := midi.NewRtAdapter()
	defer adapter.Shutdown()

	manager := state.NewManager(appName, catalog, adapter, dirs, log)
	if err := manager.LoadState(); err != nil {
		log.Warn("failed to restore app state", zap.Error(err))
	}

	if err := manager.StartHandling(); err != nil {
		controllers, listErr := manager.AvailableControllers()
		if listErr == nil {
			log.Info("available controllers", zap.Strings("names", controllers))
		}
		log.Fatal("failed to start handling", zap.Error(err))
	}

	// Run until interrupted.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	manager.StopHandling()
	if err := manager.SaveState(); err != nil {
		log.Warn("failed to save app state", zap.Error(err))
	}
}

// demoActions is a stand-in catalog. A real host application supplies
// its own actions before resolution.
func demoActions(log *zap.Logger) []actions.Action {
	logAction := func(id, title string) actions.Action {
		return actions.Action{
			ID:    id,
			Title: title,
			Callback: func() error {
				log.Info("action invoked", zap.String("action", id))
				return nil
			},
		}
	}
	return []actions.Action{
		logAction("play", "Play"),
		logAction("stop", "Stop"),
		logAction("volumeUp", "Volume up"),
		logAction("volumeDown", "Volume down"),
	}
}
