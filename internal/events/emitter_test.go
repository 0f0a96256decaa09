package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitEventNoHandlers(t *testing.T) {
	emitter := NewInMemoryEventEmitter(discardLogger())

	event, err := NewTaskRequestEvent("completion_notice", map[string]string{"user_id": "u1"})
	require.NoError(t, err)

	// No handlers is a wiring state, not a fault.
	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}

func TestEmitEventDeliversToAllHandlers(t *testing.T) {
	emitter := NewInMemoryEventEmitter(discardLogger())

	first := &recordingHandler{}
	second := &recordingHandler{}
	emitter.RegisterHandler(first)
	emitter.RegisterHandler(second)

	event, err := NewTaskRequestEvent("completion_notice", map[string]string{"user_id": "u1"})
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), event))

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Same(t, event, first.last)
	assert.Same(t, event, second.last)
}

func TestEmitEventContinuesPastFailure(t *testing.T) {
	emitter := NewInMemoryEventEmitter(discardLogger())

	failing := &recordingHandler{err: errors.New("factory rejected event")}
	healthy := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(healthy)

	event, err := NewTaskRequestEvent("completion_notice", nil)
	require.NoError(t, err)

	err = emitter.EmitEvent(context.Background(), event)
	require.Error(t, err)
	assert.EqualError(t, err, "factory rejected event")

	// The failure in the first handler must not starve the second.
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls)
}
