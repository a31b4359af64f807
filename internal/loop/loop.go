// Package loop runs the blocking dispatch loop that keeps the process
// alive after the open request has been handed to the bus. Running until
// externally terminated is deliberate: the asynchronous call needs a live
// connection to drain, and the original tool behaves the same way.
package loop

import (
	"context"
	"errors"

	"github.com/godbus/dbus/v5"

	"github.com/vk/mimesummon/internal/ctxlog"
)

// ErrConnectionClosed is returned by Run when the bus connection goes away
// underneath the loop.
var ErrConnectionClosed = errors.New("bus connection closed")

// Source is the slice of the bus connection the loop needs. *dbus.Conn
// satisfies it.
type Source interface {
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
}

// Loop drains bus traffic on a single goroutine.
type Loop struct {
	source Source
	ch     chan *dbus.Signal
}

// New registers a signal channel on source and returns the loop.
func New(source Source) (*Loop, error) {
	if source == nil {
		return nil, errors.New("nil signal source")
	}
	ch := make(chan *dbus.Signal, 16)
	source.Signal(ch)
	return &Loop{source: source, ch: ch}, nil
}

// Run blocks dispatching bus traffic until ctx is canceled or the
// connection closes. There is no normal return: after a successful
// dispatch the process is expected to be killed externally, and callers
// cancel ctx from a signal handler to make that an orderly exit.
func (l *Loop) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Event loop running.")

	for {
		select {
		case <-ctx.Done():
			l.source.RemoveSignal(l.ch)
			logger.Debug("Event loop stopped.", "reason", ctx.Err())
			return ctx.Err()
		case sig, ok := <-l.ch:
			if !ok {
				return ErrConnectionClosed
			}
			logger.Debug("Bus signal dispatched.", "name", sig.Name, "path", sig.Path)
		}
	}
}
