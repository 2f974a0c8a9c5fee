// Package worker resolves the topic subscriptions of an external task worker.
//
// Handlers are registered together with a [Descriptor] carrying their
// subscription defaults. At startup a [Resolver] merges each descriptor with
// the first [Override] for the same topic and opens the subscription on an
// [externaltask.Client].
package worker

import (
	"github.com/alecthomas/types/optional"
)

// Options are the tunable fields of a topic subscription.
//
// None means "not configured" and never results in a builder call.
type Options struct {
	// LockDuration in milliseconds.
	LockDuration                optional.Option[int64]
	Variables                   optional.Option[[]string]
	LocalVariables              optional.Option[bool]
	BusinessKey                 optional.Option[string]
	ProcessDefinitionID         optional.Option[string]
	ProcessDefinitionIDIn       optional.Option[[]string]
	ProcessDefinitionKey        optional.Option[string]
	ProcessDefinitionKeyIn      optional.Option[[]string]
	ProcessDefinitionVersionTag optional.Option[string]
	// WithoutTenantID can only enable the no-tenant filter. False is the same as None.
	WithoutTenantID            optional.Option[bool]
	TenantIDIn                 optional.Option[[]string]
	IncludeExtensionProperties optional.Option[bool]
}

// Descriptor is the declarative subscription of a handler.
type Descriptor struct {
	TopicName string
	Options
}

// Request builds the base subscription request for the descriptor.
//
// A list whose first element is "" is the unset marker and is dropped, as are
// empty lists.
func (d Descriptor) Request() Request {
	options := d.Options
	options.Variables = withoutUnsetMarker(options.Variables)
	options.ProcessDefinitionIDIn = withoutUnsetMarker(options.ProcessDefinitionIDIn)
	options.ProcessDefinitionKeyIn = withoutUnsetMarker(options.ProcessDefinitionKeyIn)
	options.TenantIDIn = withoutUnsetMarker(options.TenantIDIn)
	if !options.WithoutTenantID.Default(false) {
		options.WithoutTenantID = optional.None[bool]()
	}
	return Request{TopicName: d.TopicName, Options: options}
}

func withoutUnsetMarker(list optional.Option[[]string]) optional.Option[[]string] {
	values, ok := list.Get()
	if !ok || len(values) == 0 || values[0] == "" {
		return optional.None[[]string]()
	}
	return list
}
