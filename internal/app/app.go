// Package app provides the main application structure and coordination.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/keystorm/internal/config"
	"github.com/dshills/keystorm/internal/dispatcher"
	"github.com/dshills/keystorm/internal/dispatcher/command"
	"github.com/dshills/keystorm/internal/project/filestore"
	"github.com/dshills/keystorm/internal/renderer"
	"github.com/dshills/keystorm/internal/renderer/backend"
)

// Options configures a new Application. cmd/keystorm's flags map onto
// this 1:1.
type Options struct {
	// ConfigPath is a config file path; Config loads settings.toml from
	// the directory that contains it. Empty uses the user's default config
	// directory.
	ConfigPath string

	// File is the single file to open. Empty starts from the canonical
	// empty buffer (spec §8, "initial \n buffer").
	File string

	// Debug enables debug-level logging regardless of LogLevel.
	Debug bool

	// LogLevel is the minimum log severity: "debug", "info", "warn", "error".
	LogLevel string
}

// Application wires Config, the dispatcher Store, the command Parser, the
// Renderer and a Backend into the single-threaded event loop spec §5
// describes: one Action consumed at a time, with the channel receive
// between actions as the only suspension point.
type Application struct {
	mu sync.RWMutex

	opts   Options
	config *config.Config
	logger *Logger

	store   *dispatcher.Store
	parser  *command.Parser
	render  *renderer.Renderer
	backend backend.Backend
	session *filestore.Session

	path string

	running      atomic.Bool
	done         chan struct{}
	shutdownOnce sync.Once
}

// New builds and bootstraps an Application: it loads configuration,
// opens the initial buffer (or the canonical empty one), and wires the
// Store, Parser and Renderer around it. The returned Application has no
// Backend yet; call SetBackend before Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		return nil, NewOperationError("initialize", opts.File, err).WithContext("bootstrap failed")
	}
	return app, nil
}

// SetBackend attaches the terminal backend the event loop paints frames
// onto and reads input events from. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if b == nil {
		return NewComponentError("backend", "set", ErrInvalidOperation)
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Store returns the dispatcher Store the event loop dispatches Actions
// through.
func (app *Application) Store() *dispatcher.Store {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.store
}

// Renderer returns the Renderer frames are pulled from each tick.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.render
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
