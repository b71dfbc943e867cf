package logger

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	log = nil
	once = sync.Once{}
}

func TestConcurrentLoggingBeforeInit(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("Logger:Test:Concurrent", "n", n)
		}(i)
	}
	wg.Wait()

	assert.NotNil(t, log)
}

func TestInitKeepsFirstConfiguration(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Init("production", "error")
	first := log
	Init("development", "debug")

	assert.Same(t, first, log)
	assert.IsType(t, &slog.JSONHandler{}, log.Handler())
}

func TestNormalizeBareError(t *testing.T) {
	assert.Equal(t, []any{"error", "boom"}, normalize([]any{"boom"}))
	assert.Equal(t, []any{"id", 1}, normalize([]any{"id", 1}))
}
