// Package session registers this process with the desktop session. The
// resulting Context owns the session bus connection every other component
// dispatches through.
package session

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/vk/mimesummon/internal/ctxlog"
	"github.com/vk/mimesummon/internal/version"
)

// Context represents this process's registration with the session bus: a
// live connection plus the well-known name claimed under the application's
// identity.
type Context struct {
	conn    *dbus.Conn
	busName string
}

// Initialize connects to the session bus and claims the well-known name
// derived from appID. Failure to connect, or finding the name already owned
// by another instance, is an initialization failure.
func Initialize(ctx context.Context, appID, versionStr string) (*Context, error) {
	logger := ctxlog.FromContext(ctx)

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}

	busName := version.BusName(appID)
	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("requesting bus name %s: %w", busName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("bus name %s is already owned", busName)
	}

	logger.Debug("Session registered.", "bus_name", busName, "app_id", appID, "version", versionStr)
	return &Context{conn: conn, busName: busName}, nil
}

// Connection returns the underlying bus connection, or nil once the
// session has been closed.
func (c *Context) Connection() *dbus.Conn {
	if c == nil {
		return nil
	}
	return c.conn
}

// Close releases the well-known name and closes the bus connection.
func (c *Context) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil
	if _, err := conn.ReleaseName(c.busName); err != nil {
		conn.Close()
		return fmt.Errorf("releasing bus name %s: %w", c.busName, err)
	}
	return conn.Close()
}
