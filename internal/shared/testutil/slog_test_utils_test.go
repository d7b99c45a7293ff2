package testutil

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures messages and attributes", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.Info("survey table loaded", slog.Int("rows", 5))
		logger.Error("fetch failed", slog.String("kind", "csv"))

		require.Equal(t, 2, logs.Count())
		assert.True(t, logs.ContainsMessage("table loaded"))
		assert.True(t, logs.ContainsAttr("kind", "csv"))
		assert.True(t, logs.ContainsAttr("rows", int64(5)))
		assert.False(t, logs.ContainsMessage("access granted"))
		AssertLogContains(t, logs, slog.LevelError, "fetch failed")
	})

	t.Run("derived loggers share the store", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.With(slog.String("component", "survey_source")).Info("source loaded")
		logger.WithGroup("cache").Info("lookup", slog.Bool("hit", true))

		require.Equal(t, 2, logs.Count())
		assert.True(t, logs.ContainsAttr("component", "survey_source"))
		assert.True(t, logs.ContainsAttr("cache.hit", true))
	})

	t.Run("concurrent writers", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.Info("concurrent", slog.Int("n", n))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, logs.Count())
	})
}

func TestResponseFixture(t *testing.T) {
	header := ResponseHeader()
	for i, rec := range ResponseRecords() {
		assert.Len(t, rec, len(header), "record %d", i)
	}
	assert.NotEmpty(t, ResponsesCSV())
}
