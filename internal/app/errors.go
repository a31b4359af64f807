package app

import (
	"errors"
	"fmt"

	"github.com/vk/mimesummon/internal/launch"
)

// Every failure is terminal: each is reported once and ends the process.
// The sentinels let callers and tests tell the stages apart.
var (
	// ErrSessionInit wraps a failure to register with the session bus.
	ErrSessionInit = errors.New("session initialization failed")

	// ErrTransportUnavailable means the session yielded no bus connection.
	ErrTransportUnavailable = errors.New("session bus connection unavailable")

	// ErrLoopCreate wraps a failure to construct the event loop.
	ErrLoopCreate = errors.New("event loop creation failed")
)

// DispatchError reports a remote call that was not accepted for delivery.
type DispatchError struct {
	// Call names the operation that failed.
	Call string
	// Status is the numeric result the dispatch returned.
	Status launch.Status
	// Err is the underlying cause, if any.
	Err error
}

func (e *DispatchError) Error() string {
	msg := fmt.Sprintf("failed to dispatch %s: status %d (%s)", e.Call, int(e.Status), e.Status)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
