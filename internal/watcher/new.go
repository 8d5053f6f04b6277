package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

// New creates a new Watcher instance on inputDir
func New(inputDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir:     inputDir,
		handler:      handler,
		logger:       log,
		watcher:      watcher,
		settleDelay:  500 * time.Millisecond,
		settleChecks: 20,
		inFlight:     make(map[string]struct{}),
	}, nil
}
