package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const subscriptionMeterName = "taskworker.subscriptions"

// Subscriptions records the outcome of resolving handler subscriptions at startup.
var Subscriptions = mustInitSubscriptionMetrics()

type SubscriptionMetrics struct {
	opened  metric.Int64Counter
	skipped metric.Int64Counter
	failed  metric.Int64Counter
}

func mustInitSubscriptionMetrics() *SubscriptionMetrics {
	m, err := initSubscriptionMetrics()
	if err != nil {
		panic(fmt.Errorf("could not initialize subscription metrics: %w", err))
	}
	return m
}

func initSubscriptionMetrics() (*SubscriptionMetrics, error) {
	result := &SubscriptionMetrics{}
	var errs error
	var err error

	meter := otel.Meter(subscriptionMeterName)

	counter := fmt.Sprintf("%s.opened", subscriptionMeterName)
	if result.opened, err = meter.Int64Counter(
		counter,
		metric.WithDescription("the number of topic subscriptions opened")); err != nil {
		result.opened, errs = handleInt64CounterError(counter, err, errs)
	}

	counter = fmt.Sprintf("%s.skipped", subscriptionMeterName)
	if result.skipped, err = meter.Int64Counter(
		counter,
		metric.WithDescription("the number of handlers skipped because they have no subscription descriptor")); err != nil {
		result.skipped, errs = handleInt64CounterError(counter, err, errs)
	}

	counter = fmt.Sprintf("%s.failed", subscriptionMeterName)
	if result.failed, err = meter.Int64Counter(
		counter,
		metric.WithDescription("the number of topic subscriptions rejected by the task client")); err != nil {
		result.failed, errs = handleInt64CounterError(counter, err, errs)
	}

	return result, errs
}

func (m *SubscriptionMetrics) Opened(ctx context.Context, topicName string, overridden bool) {
	m.opened.Add(ctx, 1, metric.WithAttributes(
		attribute.String(TopicNameAttribute, topicName),
		attribute.Bool(OverriddenAttribute, overridden),
		attribute.String(OutcomeStatusAttribute, SuccessStatus),
	))
}

func (m *SubscriptionMetrics) Skipped(ctx context.Context, handlerName string) {
	m.skipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String(HandlerNameAttribute, handlerName),
	))
}

func (m *SubscriptionMetrics) Failed(ctx context.Context, topicName string) {
	m.failed.Add(ctx, 1, metric.WithAttributes(
		attribute.String(TopicNameAttribute, topicName),
		attribute.String(OutcomeStatusAttribute, FailureStatus),
	))
}

//nolint:unparam
func handleInt64CounterError(counter string, err error, errs error) (metric.Int64Counter, error) {
	return noop.Int64Counter{}, errors.Join(errs, fmt.Errorf("%q counter init failed; falling back to noop: %w", counter, err))
}
