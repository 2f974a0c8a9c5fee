package main

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/block/taskworker/externaltask"
	"github.com/block/taskworker/internal/log"
	"github.com/block/taskworker/worker"
)

func testConfig() externaltask.Config {
	return externaltask.Config{
		Endpoint:     &url.URL{Scheme: "http", Host: "127.0.0.1:8080", Path: "/engine-rest"},
		WorkerID:     "test",
		LockDuration: 20 * time.Second,
	}
}

func TestRunOpensBuiltinHandlers(t *testing.T) {
	overrides := filepath.Join(t.TempDir(), "subscriptions.toml")
	err := os.WriteFile(overrides, []byte(`
[[subscriptions]]
topic-name = "ship"
lock-duration = 1000
`), 0600)
	assert.NoError(t, err)

	w := &strings.Builder{}
	ctx, cancel := context.WithCancel(log.ContextWithLogger(context.Background(), log.Configure(w, log.Config{Level: log.Info})))
	cancel()

	err = run(ctx, testConfig(), overrides, worker.NewRegistry(handlers()...))
	assert.NoError(t, err)
	assert.Equal(t, `info:worker: External task client subscribed to topic "invoice"
info:worker: External task client subscribed to topic "ship"
warn:worker: Skipping subscription, no subscription descriptor registered for handler "audit"
`, w.String())
}

func TestRunFailsOnBadOverrides(t *testing.T) {
	overrides := filepath.Join(t.TempDir(), "subscriptions.yaml")
	err := os.WriteFile(overrides, []byte("subscriptions:\n  - lockDuration: 1000\n"), 0600)
	assert.NoError(t, err)

	ctx := log.ContextWithNewDefaultLogger(context.Background())
	err = run(ctx, testConfig(), overrides, worker.NewRegistry(handlers()...))
	assert.Error(t, err)
}

func TestInvoiceHandlerRequiresAmount(t *testing.T) {
	ctx := log.ContextWithNewDefaultLogger(context.Background())
	err := handleInvoice(ctx, externaltask.Task{ID: "1", TopicName: "invoice"})
	assert.EqualError(t, err, "invoice task 1 has no amount")

	err = handleInvoice(ctx, externaltask.Task{ID: "2", TopicName: "invoice", Variables: map[string]any{"amount": 10, "currency": "EUR"}})
	assert.NoError(t, err)
}

func TestRunCopiesSubscriptionEventsToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task-worker.log")
	logger, closeLog, err := log.Open(&strings.Builder{}, log.Config{Level: log.Info, File: path})
	assert.NoError(t, err)
	ctx, cancel := context.WithCancel(log.ContextWithLogger(context.Background(), logger))
	cancel()

	err = run(ctx, testConfig(), "", worker.NewRegistry(handlers()...))
	assert.NoError(t, err)
	assert.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, 3, len(lines))
	assert.Contains(t, lines[0], `"message":"External task client subscribed to topic \"invoice\""`)
	assert.Contains(t, lines[2], `"level":"warn"`)
}
