package loop

import (
	"context"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource hands the loop a signal channel it controls.
type fakeSource struct {
	ch      chan<- *dbus.Signal
	removed bool
}

func (s *fakeSource) Signal(ch chan<- *dbus.Signal) {
	s.ch = ch
}

func (s *fakeSource) RemoveSignal(ch chan<- *dbus.Signal) {
	s.removed = true
}

func TestNew_NilSource(t *testing.T) {
	t.Parallel()

	l, err := New(nil)

	require.Error(t, err)
	assert.Nil(t, l)
}

func TestRun_BlocksUntilCanceled(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	l, err := New(source)
	require.NoError(t, err)
	require.NotNil(t, source.ch, "New should register a signal channel")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx)
	}()

	// The loop must still be running: it has no normal return path.
	select {
	case err := <-done:
		t.Fatalf("Run returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	assert.True(t, source.removed, "the signal channel should be deregistered on the way out")
}

func TestRun_DrainsSignals(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	l, err := New(source)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx)
	}()

	// Delivery must not block the sender even while the loop runs.
	for i := 0; i < 3; i++ {
		source.ch <- &dbus.Signal{Name: "org.example.Ping", Path: "/org/example"}
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestRun_ConnectionClosed(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	l, err := New(source)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- l.Run(context.Background())
	}()

	close(source.ch)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrConnectionClosed)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after the connection closed")
	}
}
