package lifecycle

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"postgres", "sessions", "http"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http", "sessions", "postgres"}, order)
}

func TestShutdownJoinsErrorsAndRunsOnce(t *testing.T) {
	m := New(time.Second, nil)
	calls := 0
	m.Register("a", func(context.Context) error { calls++; return errors.New("a failed") })
	m.Register("b", func(context.Context) error { calls++; return errors.New("b failed") })

	err := m.Shutdown(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a failed")
	assert.Contains(t, err.Error(), "b failed")

	assert.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestRunCancelsContextOnFailure(t *testing.T) {
	m := New(time.Second, nil)
	ctx := m.Run(context.Background(), "server", func() error { return errors.New("bind: address in use") })

	select {
	case <-ctx.Done():
		assert.EqualError(t, context.Cause(ctx), "bind: address in use")
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestContextCancelsOnSignal(t *testing.T) {
	m := New(time.Second, nil)
	ctx, stop := m.Context(context.Background())
	defer stop()

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGTERM))
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not cancel the context")
	}
}
