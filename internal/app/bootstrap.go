package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dshills/keystorm/internal/config"
	"github.com/dshills/keystorm/internal/dispatcher"
	"github.com/dshills/keystorm/internal/dispatcher/command"
	"github.com/dshills/keystorm/internal/engine/position"
	"github.com/dshills/keystorm/internal/engine/state"
	"github.com/dshills/keystorm/internal/project/filestore"
	"github.com/dshills/keystorm/internal/renderer"
)

// bootstrap loads configuration, opens the initial buffer, and wires the
// Store, Parser and Renderer. It is called once from New; nothing here
// re-runs for the life of the process (spec §6, "Config is loaded once
// at startup... and is not re-read").
func (app *Application) bootstrap() error {
	cfg := config.New(configOptions(app.opts)...)
	if err := cfg.Load(context.Background()); err != nil {
		return NewComponentError("config", "load", err)
	}
	app.config = cfg

	level := ParseLogLevel(cfg.Logging().Level)
	if app.opts.LogLevel != "" {
		level = ParseLogLevel(app.opts.LogLevel)
	}
	if app.opts.Debug {
		level = LogLevelDebug
	}
	app.logger = NewLogger(LoggerConfig{Level: level, Output: os.Stderr, Prefix: "keystorm"})

	initial, err := app.loadInitialState()
	if err != nil {
		return NewOperationError("open", app.opts.File, err)
	}

	session, err := openDefaultSession()
	if err != nil {
		app.logger.WithComponent("session").Warn("session unavailable: %v", err)
	}
	app.session = session
	if session != nil && initial.Path != "" {
		if row, col, ok := session.Position(initial.Path); ok {
			initial.Cursor = position.Position{Row: row, Col: col}
		}
	}

	app.store = dispatcher.New(initial, dispatcher.WithPersist(filestore.Save))
	app.parser = command.New()
	app.render = renderer.New(app.store.Reactor(), app.store.Highlighter(), renderer.DefaultTheme())
	app.path = initial.Path

	return nil
}

// configOptions translates Options into config.Option values.
func configOptions(opts Options) []config.Option {
	var copts []config.Option
	if opts.ConfigPath != "" {
		copts = append(copts, config.WithUserConfigDir(filepath.Dir(opts.ConfigPath)))
	}
	return copts
}

// loadInitialState builds the State bootstrap hands to the Store: either
// the canonical empty buffer (spec §8) or the requested file loaded
// through filestore (a missing file is not an error; it yields an empty
// buffer per spec §6).
func (app *Application) loadInitialState() (state.State, error) {
	if app.opts.File == "" {
		return state.New(), nil
	}

	buf, err := filestore.Load(app.opts.File)
	if err != nil {
		return state.State{}, err
	}
	buf.SetTabWidth(app.config.Editor().TabSize)

	path, err := filepath.Abs(app.opts.File)
	if err != nil {
		path = app.opts.File
	}

	st := state.New()
	st.Buffer = buf
	st.Path = path
	return st, nil
}

// openDefaultSession opens the cursor-position sidecar at its default
// path. A missing or unusable session is non-fatal: bootstrap falls back
// to Cursor{0,0}.
func openDefaultSession() (*filestore.Session, error) {
	path, err := filestore.DefaultSessionPath()
	if err != nil {
		return nil, err
	}
	return filestore.OpenSession(path)
}
