package app

import (
	"context"
	"fmt"

	"github.com/vk/mimesummon/internal/ctxlog"
	"github.com/vk/mimesummon/internal/launch"
)

// Run executes the startup sequence: register the session, obtain the bus
// connection, build the event loop, dispatch the single open request, then
// block in the loop. The first failure wins; there are no retries. A nil
// return only happens when the loop is stopped, which in production means
// an external signal canceled ctx.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	appID, ver := appIdentity()
	sess, err := a.dial(ctx, appID, ver)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionInit, err)
	}
	defer sess.Close()
	a.logger.Debug("Session context acquired.", "app_id", appID, "version", ver)

	conn := sess.Connection()
	if conn == nil {
		return ErrTransportUnavailable
	}
	a.logger.Debug("Bus connection obtained.")

	run, err := a.newRunner(conn)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoopCreate, err)
	}
	a.logger.Debug("Event loop created.")

	open, err := a.newOpener(ctx, conn)
	if err != nil {
		return fmt.Errorf("preparing launcher: %w", err)
	}

	var (
		status launch.Status
		call   string
	)
	if a.config.MIMEType == "" {
		call = "OpenFile"
		status, err = open.OpenFile(ctx, a.config.Path)
	} else {
		call = "OpenFileWithType"
		status, err = open.OpenFileWithType(ctx, a.config.Path, a.config.MIMEType)
	}
	if status != launch.StatusOK {
		return &DispatchError{Call: call, Status: status, Err: err}
	}
	a.logger.Info("Open request dispatched.", "path", a.config.Path, "type", a.config.MIMEType)

	// Blocks until ctx is canceled or the connection drops.
	return run.Run(ctx)
}
