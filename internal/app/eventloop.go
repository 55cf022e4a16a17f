package app

import (
	"context"
	"errors"

	"github.com/dshills/keystorm/internal/dispatcher"
	"github.com/dshills/keystorm/internal/renderer/backend"
)

// Run starts the event loop: it polls the Backend for input in a
// separate goroutine, translates and dispatches Actions in strict FIFO
// order, and repaints after each one (spec §5). Run blocks until Quit is
// dispatched, Shutdown is called, or the Backend reports an
// unrecoverable error; it returns ErrQuit on the normal-exit path so
// callers can tell it apart with errors.Is.
func (app *Application) Run() error {
	if app.backend == nil {
		return NewComponentError("backend", "run", ErrComponentNotAvailable)
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}

	w, h := app.backend.Size()
	app.store.Resize(uint32(w), uint32(h))

	events := app.pollEvents()
	if err := app.paint(); err != nil {
		app.logger.WithComponent("renderer").Warn("initial paint failed: %v", err)
	}

	for {
		select {
		case <-app.done:
			return ErrQuit
		case ev, ok := <-events:
			if !ok {
				return ErrQuit
			}
			if err := app.handleEvent(ev); err != nil {
				if errors.Is(err, dispatcher.ErrQuit) {
					app.persistSession()
					return ErrQuit
				}
				app.logger.WithComponent("dispatcher").Warn("dispatch failed: %v", err)
			}
			if err := app.paint(); err != nil {
				app.logger.WithComponent("renderer").Warn("paint failed: %v", err)
			}
		}
	}
}

// pollEvents runs the Backend's blocking PollEvent in its own goroutine
// and forwards results on a channel, so the event loop's select can also
// watch app.done (spec §5's "suspension point is the channel receive
// between actions").
func (app *Application) pollEvents() <-chan backend.Event {
	out := make(chan backend.Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-app.done:
				return
			default:
			}
			ev := app.backend.PollEvent()
			select {
			case out <- ev:
			case <-app.done:
				return
			}
		}
	}()
	return out
}

// handleEvent translates one Backend event into Actions and dispatches
// them in order. A resize event updates Store geometry directly rather
// than going through the Action grammar (spec §5, §6).
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.store.Resize(uint32(ev.Width), uint32(ev.Height))
		return nil
	case backend.EventKey:
		mode := app.store.Snapshot().Mode
		actions, err := app.parser.Translate(ev.Key, mode)
		if err != nil {
			app.logger.WithComponent("parser").Debug("translate: %v", err)
		}
		for _, a := range actions {
			if derr := app.store.Dispatch(a); derr != nil {
				return derr
			}
		}
		return nil
	default:
		return nil
	}
}

// paint pulls this frame's render props and draws them to the Backend.
func (app *Application) paint() error {
	textArea, gutter, cursor, status := app.render.Frame(context.Background())
	backend.Paint(app.backend, textArea, gutter, cursor, status)
	return nil
}
