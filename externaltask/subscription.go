package externaltask

import (
	"slices"

	"github.com/alecthomas/types/optional"
)

var _ TopicSubscription = (*Subscription)(nil)

// Subscription is a topic subscription held by a [DefaultClient].
type Subscription struct {
	// client is fixed when the builder is created; whether the subscription
	// is open is tracked by the client under its lock.
	client *DefaultClient

	topicName                   string
	handler                     Handler
	lockDuration                optional.Option[int64]
	variableNames               optional.Option[[]string]
	localVariables              bool
	businessKey                 optional.Option[string]
	processDefinitionID         optional.Option[string]
	processDefinitionIDIn       optional.Option[[]string]
	processDefinitionKey        optional.Option[string]
	processDefinitionKeyIn      optional.Option[[]string]
	processDefinitionVersionTag optional.Option[string]
	withoutTenantID             bool
	tenantIDIn                  optional.Option[[]string]
	includeExtensionProperties  bool
}

func (s *Subscription) TopicName() string { return s.topicName }
func (s *Subscription) Handler() Handler { return s.handler }

// LockDuration in milliseconds, falling back to the client default.
func (s *Subscription) LockDuration() int64 {
	return s.lockDuration.Default(s.client.lockDuration)
}

// VariableNames to fetch with each task. None fetches all variables.
func (s *Subscription) VariableNames() optional.Option[[]string] { return s.variableNames }
func (s *Subscription) LocalVariables() bool { return s.localVariables }
func (s *Subscription) BusinessKey() optional.Option[string] { return s.businessKey }
func (s *Subscription) ProcessDefinitionID() optional.Option[string] {
	return s.processDefinitionID
}
func (s *Subscription) ProcessDefinitionIDIn() optional.Option[[]string] {
	return s.processDefinitionIDIn
}
func (s *Subscription) ProcessDefinitionKey() optional.Option[string] {
	return s.processDefinitionKey
}
func (s *Subscription) ProcessDefinitionKeyIn() optional.Option[[]string] {
	return s.processDefinitionKeyIn
}
func (s *Subscription) ProcessDefinitionVersionTag() optional.Option[string] {
	return s.processDefinitionVersionTag
}
func (s *Subscription) WithoutTenantID() bool { return s.withoutTenantID }
func (s *Subscription) TenantIDIn() optional.Option[[]string] { return s.tenantIDIn }
func (s *Subscription) IncludeExtensionProperties() bool { return s.includeExtensionProperties }

// Close the subscription. Closing twice, or closing a subscription that was
// never opened, does nothing. Safe for concurrent use.
func (s *Subscription) Close() error {
	s.client.close(s)
	return nil
}

type subscriptionBuilder struct {
	client       *DefaultClient
	subscription *Subscription
}

var _ TopicSubscriptionBuilder = (*subscriptionBuilder)(nil)

func (b *subscriptionBuilder) Handler(handler Handler) TopicSubscriptionBuilder {
	b.subscription.handler = handler
	return b
}

func (b *subscriptionBuilder) LockDuration(lockDuration int64) TopicSubscriptionBuilder {
	b.subscription.lockDuration = optional.Some(lockDuration)
	return b
}

func (b *subscriptionBuilder) Variables(names ...string) TopicSubscriptionBuilder {
	b.subscription.variableNames = optional.Some(slices.Clone(names))
	return b
}

func (b *subscriptionBuilder) LocalVariables(localVariables bool) TopicSubscriptionBuilder {
	b.subscription.localVariables = localVariables
	return b
}

func (b *subscriptionBuilder) BusinessKey(businessKey string) TopicSubscriptionBuilder {
	b.subscription.businessKey = optional.Some(businessKey)
	return b
}

func (b *subscriptionBuilder) ProcessDefinitionID(id string) TopicSubscriptionBuilder {
	b.subscription.processDefinitionID = optional.Some(id)
	return b
}

func (b *subscriptionBuilder) ProcessDefinitionIDIn(ids ...string) TopicSubscriptionBuilder {
	b.subscription.processDefinitionIDIn = optional.Some(slices.Clone(ids))
	return b
}

func (b *subscriptionBuilder) ProcessDefinitionKey(key string) TopicSubscriptionBuilder {
	b.subscription.processDefinitionKey = optional.Some(key)
	return b
}

func (b *subscriptionBuilder) ProcessDefinitionKeyIn(keys ...string) TopicSubscriptionBuilder {
	b.subscription.processDefinitionKeyIn = optional.Some(slices.Clone(keys))
	return b
}

func (b *subscriptionBuilder) ProcessDefinitionVersionTag(tag string) TopicSubscriptionBuilder {
	b.subscription.processDefinitionVersionTag = optional.Some(tag)
	return b
}

func (b *subscriptionBuilder) WithoutTenantID() TopicSubscriptionBuilder {
	b.subscription.withoutTenantID = true
	return b
}

func (b *subscriptionBuilder) TenantIDIn(ids ...string) TopicSubscriptionBuilder {
	b.subscription.tenantIDIn = optional.Some(slices.Clone(ids))
	return b
}

func (b *subscriptionBuilder) IncludeExtensionProperties(include bool) TopicSubscriptionBuilder {
	b.subscription.includeExtensionProperties = include
	return b
}

func (b *subscriptionBuilder) Open() (TopicSubscription, error) {
	if err := b.client.open(b.subscription); err != nil {
		return nil, err
	}
	return b.subscription, nil
}
