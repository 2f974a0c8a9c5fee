package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/types/optional"

	"github.com/block/taskworker/externaltask"
	"github.com/block/taskworker/internal/log"
	"github.com/block/taskworker/worker"
)

// handlers registered by this worker. Subscription defaults can be changed
// per topic with --subscriptions.
func handlers() []worker.Registree {
	return []worker.Registree{
		worker.Subscription("invoice", worker.Descriptor{
			TopicName: "invoice",
			Options: worker.Options{
				LockDuration: optional.Some[int64](5000),
				Variables:    optional.Some([]string{"amount", "currency"}),
			},
		}, externaltask.HandlerFunc(handleInvoice)),
		worker.Subscription("ship", worker.Descriptor{
			TopicName: "ship",
			Options: worker.Options{
				Variables:                  optional.Some([]string{""}),
				IncludeExtensionProperties: optional.Some(true),
			},
		}, externaltask.HandlerFunc(handleShipment)),
		// Audit handlers are attached by deployments that enable auditing via Describe.
		worker.Handler("audit", externaltask.HandlerFunc(handleAudit)),
	}
}

func handleInvoice(ctx context.Context, task externaltask.Task) error {
	amount, ok := task.Variables["amount"]
	if !ok {
		return fmt.Errorf("invoice task %s has no amount", task.ID)
	}
	log.FromContext(ctx).Scope("invoice").Infof("Invoicing %v %v for %s", amount, task.Variables["currency"], task.BusinessKey)
	return nil
}

func handleShipment(ctx context.Context, task externaltask.Task) error {
	log.FromContext(ctx).Scope("ship").Infof("Shipping order %s (carrier %s)", task.BusinessKey, task.ExtensionProperties["carrier"])
	return nil
}

func handleAudit(ctx context.Context, task externaltask.Task) error {
	log.FromContext(ctx).Scope("audit").Debugf("Task %s on %s for process instance %s", task.ID, task.TopicName, task.ProcessInstanceID)
	return nil
}
