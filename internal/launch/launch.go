// Package launch issues the single "open this file" request over the
// session bus. Dispatch is fire-and-forget: a successful status means the
// request was accepted for delivery, not that the remote service opened
// anything.
package launch

import (
	"context"
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"
	"github.com/wailsapp/mimetype"

	"github.com/vk/mimesummon/internal/ctxlog"
	"github.com/vk/mimesummon/internal/registry"
)

// Status is the numeric result of a dispatch attempt.
type Status int

const (
	// StatusError means the request could not be handed to the bus.
	StatusError Status = 0
	// StatusOK means the request was accepted for delivery.
	StatusOK Status = 1
	// StatusNoHandler means no registered handler matches the type.
	StatusNoHandler Status = -1
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusNoHandler:
		return "no handler"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// fallbackType is used when local detection cannot read the file; the
// universal handler still gets a chance to open it.
const fallbackType = "application/octet-stream"

// Bus is the slice of the bus connection the launcher needs. *dbus.Conn
// satisfies it.
type Bus interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
}

// Launcher resolves a handler for a file's content type and sends it one
// asynchronous open request.
type Launcher struct {
	bus Bus
	reg *registry.Registry
}

// New returns a Launcher dispatching over bus, choosing handlers from reg.
func New(bus Bus, reg *registry.Registry) *Launcher {
	return &Launcher{bus: bus, reg: reg}
}

// OpenFile requests that path be opened, detecting its content type from
// the file itself.
func (l *Launcher) OpenFile(ctx context.Context, path string) (Status, error) {
	mimeType := detectType(ctx, path)
	return l.OpenFileWithType(ctx, path, mimeType)
}

// directoryType is what a directory detects as; sniffing only applies to
// regular files.
const directoryType = "inode/directory"

// detectType classifies path. Directories are recognized by stat before
// any content sniffing, since sniffing cannot read them; unreadable files
// fall back so the universal handler still gets the request.
func detectType(ctx context.Context, path string) string {
	logger := ctxlog.FromContext(ctx)

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		logger.Debug("Content type detected.", "path", path, "type", directoryType)
		return directoryType
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		logger.Warn("Content type detection failed, using fallback.", "path", path, "fallback", fallbackType, "error", err)
		return fallbackType
	}

	logger.Debug("Content type detected.", "path", path, "type", detected.String())
	return detected.String()
}

// OpenFileWithType requests that path be opened as mimeType. The type hint
// is trusted as given; no detection is performed.
func (l *Launcher) OpenFileWithType(ctx context.Context, path string, mimeType string) (Status, error) {
	logger := ctxlog.FromContext(ctx)

	handler, ok := l.reg.Resolve(mimeType)
	if !ok {
		return StatusNoHandler, fmt.Errorf("no handler registered for type %q", mimeType)
	}

	uri, err := FileURI(path)
	if err != nil {
		return StatusError, fmt.Errorf("building URI for %s: %w", path, err)
	}

	logger.Debug("Dispatching open request.",
		"handler", handler.Name,
		"service", handler.Service,
		"uri", uri,
		"type", mimeType,
	)

	// Portal calling convention: parent window handle, URI, options.
	// FlagNoReplyExpected hands the message to the bus without waiting
	// for the remote service to act on it.
	obj := l.bus.Object(handler.Service, dbus.ObjectPath(handler.Object))
	call := obj.Go(
		handler.Interface+"."+handler.Method,
		dbus.FlagNoReplyExpected,
		nil,
		"",
		uri,
		map[string]dbus.Variant{},
	)
	if call.Err != nil {
		return StatusError, fmt.Errorf("dispatching %s.%s: %w", handler.Interface, handler.Method, call.Err)
	}

	return StatusOK, nil
}
