package worker

import (
	"context"
	"fmt"

	"github.com/alecthomas/types/optional"

	"github.com/block/taskworker/externaltask"
	"github.com/block/taskworker/internal/log"
	"github.com/block/taskworker/internal/observability"
)

// Resolver opens the subscriptions of discovered handlers on a client.
type Resolver struct {
	client    externaltask.Client
	overrides OverrideTable
}

// NewResolver creates a resolver using the overrides supplied by source.
func NewResolver(client externaltask.Client, source OverrideSource) *Resolver {
	var overrides OverrideTable
	if source != nil {
		overrides = source.Overrides()
	}
	return &Resolver{client: client, overrides: overrides}
}

// OpenAll resolves and opens a subscription for every handler in source.
//
// It stops at the first subscription the client rejects.
func (r *Resolver) OpenAll(ctx context.Context, source HandlerSource) ([]externaltask.TopicSubscription, error) {
	var out []externaltask.TopicSubscription
	for _, discovered := range source.Discover() {
		subscription, err := r.ResolveAndOpen(ctx, discovered)
		if err != nil {
			return out, err
		}
		if s, ok := subscription.Get(); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// ResolveAndOpen opens the subscription for a single handler.
//
// Handlers without a descriptor are skipped with a warning and return None.
func (r *Resolver) ResolveAndOpen(ctx context.Context, discovered Discovered) (optional.Option[externaltask.TopicSubscription], error) {
	logger := log.FromContext(ctx).Scope("worker")
	descriptor, ok := discovered.Descriptor.Get()
	if !ok {
		logger.Warnf("Skipping subscription, no subscription descriptor registered for handler %q", discovered.Name)
		observability.Subscriptions.Skipped(ctx, discovered.Name)
		return optional.None[externaltask.TopicSubscription](), nil
	}

	request := descriptor.Request()
	override, overridden := r.overrides.Lookup(descriptor.TopicName).Get()
	if overridden {
		logger.Debugf("Applying subscription override for topic %q", descriptor.TopicName)
		request = request.Merge(override)
	}

	builder := r.client.Subscribe(request.TopicName).Handler(discovered.Handler)
	subscription, err := request.Apply(builder).Open()
	if err != nil {
		observability.Subscriptions.Failed(ctx, request.TopicName)
		return optional.None[externaltask.TopicSubscription](), fmt.Errorf("failed to subscribe handler %q to topic %q: %w", discovered.Name, request.TopicName, err)
	}
	observability.Subscriptions.Opened(ctx, subscription.TopicName(), overridden)
	logger.Infof("External task client subscribed to topic %q", subscription.TopicName())
	return optional.Some(subscription), nil
}
