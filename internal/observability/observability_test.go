package observability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/block/taskworker/internal/log"
)

func TestOtelLogger(t *testing.T) {
	w := &strings.Builder{}
	logger := NewOtelLogger(log.Configure(w, log.Config{Level: log.Trace}), log.Info)
	logger.V(8).Info("dropped")
	logger.WithValues("exporter", "otlp").V(4).Info("exporting", "count", 3)
	logger.Error(errors.New("unreachable"), "export failed")
	assert.Equal(t, "info:otel: exporting exporter=otlp count=3\nerror:otel: export failed: unreachable\n", w.String())
}

func TestSubscriptionMetrics(t *testing.T) {
	reader := metric.NewManualReader()
	otel.SetMeterProvider(metric.NewMeterProvider(metric.WithReader(reader)))
	m, err := initSubscriptionMetrics()
	assert.NoError(t, err)

	ctx := context.Background()
	m.Opened(ctx, "invoice", true)
	m.Opened(ctx, "ship", false)
	m.Skipped(ctx, "audit")

	var rm metricdata.ResourceMetrics
	assert.NoError(t, reader.Collect(ctx, &rm))
	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, point := range sum.DataPoints {
				totals[m.Name] += point.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{
		"taskworker.subscriptions.opened":  2,
		"taskworker.subscriptions.skipped": 1,
	}, totals)
}
