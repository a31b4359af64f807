package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/vk/mimesummon/internal/launch"
	"github.com/vk/mimesummon/internal/loop"
	"github.com/vk/mimesummon/internal/registry"
	"github.com/vk/mimesummon/internal/session"
	"github.com/vk/mimesummon/internal/version"
)

// platformSession is the slice of session.Context the app depends on.
type platformSession interface {
	Connection() *dbus.Conn
	Close() error
}

// opener is the slice of launch.Launcher the app depends on.
type opener interface {
	OpenFile(ctx context.Context, path string) (launch.Status, error)
	OpenFileWithType(ctx context.Context, path, mimeType string) (launch.Status, error)
}

// runner is the slice of loop.Loop the app depends on.
type runner interface {
	Run(ctx context.Context) error
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle. The factory fields exist so tests can substitute fakes for
// the bus-backed components.
type App struct {
	errW   io.Writer
	logger *slog.Logger
	config *Config

	dial      func(ctx context.Context, appID, ver string) (platformSession, error)
	newOpener func(ctx context.Context, conn *dbus.Conn) (opener, error)
	newRunner func(conn *dbus.Conn) (runner, error)
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(errW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		errW:   errW,
		logger: logger,
		config: config,
	}

	a.dial = func(ctx context.Context, appID, ver string) (platformSession, error) {
		return session.Initialize(ctx, appID, ver)
	}
	a.newOpener = func(ctx context.Context, conn *dbus.Conn) (opener, error) {
		reg, err := a.loadRegistry(ctx)
		if err != nil {
			return nil, err
		}
		return launch.New(conn, reg), nil
	}
	a.newRunner = func(conn *dbus.Conn) (runner, error) {
		return loop.New(conn)
	}

	return a
}

// Logger returns the app's isolated logger. This is primarily for the
// entrypoint and tests.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// loadRegistry builds the handler registry: builtins plus whatever the
// platform registry directory provides. Config.RegistryDir overrides the
// platform location.
func (a *App) loadRegistry(ctx context.Context) (*registry.Registry, error) {
	reg := registry.New()
	dir := a.config.RegistryDir
	if dir == "" {
		dir = registry.DefaultDir
	}
	if err := reg.LoadDir(ctx, dir); err != nil {
		return nil, err
	}
	a.logger.Debug("Handler registry ready.", "dir", dir, "handlers", reg.Len())
	return reg, nil
}

// appIdentity returns the identity the app registers with the session.
func appIdentity() (appID, ver string) {
	return version.AppID, version.Number
}
