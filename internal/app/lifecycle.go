package app

// Shutdown stops the event loop (if running) and tears down the
// Backend. Safe to call more than once and safe to call from a signal
// handler goroutine concurrently with Run.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.done)
	})

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil {
		b.Shutdown()
	}
}

// persistSession records the current cursor position in the session
// sidecar, if one was opened at startup and a file is open. Failures are
// logged, not returned: losing the position sidecar never blocks quit.
func (app *Application) persistSession() {
	if app.session == nil {
		return
	}
	snap := app.store.Snapshot()
	if snap.Path == "" {
		return
	}
	if err := app.session.SetPosition(snap.Path, snap.Cursor.Row, snap.Cursor.Col); err != nil {
		app.logger.WithComponent("session").Warn("save position failed: %v", err)
	}
}
