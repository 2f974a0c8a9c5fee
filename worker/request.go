package worker

import (
	"github.com/alecthomas/types/optional"

	"github.com/block/taskworker/externaltask"
)

// Request is a resolved subscription request.
type Request struct {
	TopicName string
	Options
}

// Merge returns r with every field set in override replacing its own.
//
// Lists are replaced, not combined. WithoutTenantID is only taken when true.
func (r Request) Merge(override Override) Request {
	replace(&r.LockDuration, override.LockDuration)
	replace(&r.Variables, override.Variables)
	replace(&r.LocalVariables, override.LocalVariables)
	replace(&r.BusinessKey, override.BusinessKey)
	replace(&r.ProcessDefinitionID, override.ProcessDefinitionID)
	replace(&r.ProcessDefinitionIDIn, override.ProcessDefinitionIDIn)
	replace(&r.ProcessDefinitionKey, override.ProcessDefinitionKey)
	replace(&r.ProcessDefinitionKeyIn, override.ProcessDefinitionKeyIn)
	replace(&r.ProcessDefinitionVersionTag, override.ProcessDefinitionVersionTag)
	if override.WithoutTenantID.Default(false) {
		r.WithoutTenantID = optional.Some(true)
	}
	replace(&r.TenantIDIn, override.TenantIDIn)
	replace(&r.IncludeExtensionProperties, override.IncludeExtensionProperties)
	return r
}

// Apply calls the builder setter of every field that is set.
func (r Request) Apply(builder externaltask.TopicSubscriptionBuilder) externaltask.TopicSubscriptionBuilder {
	set(r.LockDuration, builder.LockDuration)
	set(r.Variables, func(v []string) externaltask.TopicSubscriptionBuilder { return builder.Variables(v...) })
	set(r.LocalVariables, builder.LocalVariables)
	set(r.BusinessKey, builder.BusinessKey)
	set(r.ProcessDefinitionID, builder.ProcessDefinitionID)
	set(r.ProcessDefinitionIDIn, func(v []string) externaltask.TopicSubscriptionBuilder { return builder.ProcessDefinitionIDIn(v...) })
	set(r.ProcessDefinitionKey, builder.ProcessDefinitionKey)
	set(r.ProcessDefinitionKeyIn, func(v []string) externaltask.TopicSubscriptionBuilder { return builder.ProcessDefinitionKeyIn(v...) })
	set(r.ProcessDefinitionVersionTag, builder.ProcessDefinitionVersionTag)
	if r.WithoutTenantID.Default(false) {
		builder.WithoutTenantID()
	}
	set(r.TenantIDIn, func(v []string) externaltask.TopicSubscriptionBuilder { return builder.TenantIDIn(v...) })
	set(r.IncludeExtensionProperties, builder.IncludeExtensionProperties)
	return builder
}

func replace[T any](dst *optional.Option[T], src optional.Option[T]) {
	if src.Ok() {
		*dst = src
	}
}

func set[T any](value optional.Option[T], setter func(T) externaltask.TopicSubscriptionBuilder) {
	if v, ok := value.Get(); ok {
		setter(v)
	}
}
