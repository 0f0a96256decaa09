package logger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferConcurrentWrites(t *testing.T) {
	buf := &TestLogBuffer{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				fmt.Fprintf(buf, "{\"writer\":%d,\"seq\":%d}\n", n, j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 8*50)
}

func TestGetLogEntries(t *testing.T) {
	t.Run("skips blank lines", func(t *testing.T) {
		buf := &TestLogBuffer{}
		_, _ = buf.Write([]byte("{\"msg\":\"one\"}\n\n{\"msg\":\"two\"}\n"))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "one", entries[0]["msg"])
		assert.Equal(t, "two", entries[1]["msg"])
	})

	t.Run("malformed line reports an error", func(t *testing.T) {
		buf := &TestLogBuffer{}
		_, _ = buf.Write([]byte("{\"msg\":\"one\"}\nnot json\n"))

		_, err := buf.GetLogEntries()
		assert.Error(t, err)
	})

	t.Run("reset empties the buffer", func(t *testing.T) {
		buf := &TestLogBuffer{}
		_, _ = buf.Write([]byte("{\"msg\":\"one\"}\n"))
		buf.Reset()

		assert.Empty(t, buf.String())
		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
