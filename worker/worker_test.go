package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/block/taskworker/externaltask"
	"github.com/block/taskworker/internal/log"
)

// recordingClient records every builder call so tests can assert which setters were invoked.
type recordingClient struct {
	calls   []string
	openErr error
}

var _ externaltask.Client = (*recordingClient)(nil)

func (c *recordingClient) Subscribe(topicName string) externaltask.TopicSubscriptionBuilder {
	c.record("subscribe", topicName)
	return &recordingBuilder{client: c, topicName: topicName}
}

func (c *recordingClient) record(call string, args ...any) {
	if len(args) == 0 {
		c.calls = append(c.calls, call)
		return
	}
	c.calls = append(c.calls, fmt.Sprintf("%s=%v", call, args[0]))
}

type recordingBuilder struct {
	client    *recordingClient
	topicName string
}

func (b *recordingBuilder) set(call string, args ...any) externaltask.TopicSubscriptionBuilder {
	b.client.record(call, args...)
	return b
}

func (b *recordingBuilder) Handler(externaltask.Handler) externaltask.TopicSubscriptionBuilder {
	return b.set("handler")
}
func (b *recordingBuilder) LockDuration(v int64) externaltask.TopicSubscriptionBuilder {
	return b.set("lockDuration", v)
}
func (b *recordingBuilder) Variables(v ...string) externaltask.TopicSubscriptionBuilder {
	return b.set("variables", v)
}
func (b *recordingBuilder) LocalVariables(v bool) externaltask.TopicSubscriptionBuilder {
	return b.set("localVariables", v)
}
func (b *recordingBuilder) BusinessKey(v string) externaltask.TopicSubscriptionBuilder {
	return b.set("businessKey", v)
}
func (b *recordingBuilder) ProcessDefinitionID(v string) externaltask.TopicSubscriptionBuilder {
	return b.set("processDefinitionId", v)
}
func (b *recordingBuilder) ProcessDefinitionIDIn(v ...string) externaltask.TopicSubscriptionBuilder {
	return b.set("processDefinitionIdIn", v)
}
func (b *recordingBuilder) ProcessDefinitionKey(v string) externaltask.TopicSubscriptionBuilder {
	return b.set("processDefinitionKey", v)
}
func (b *recordingBuilder) ProcessDefinitionKeyIn(v ...string) externaltask.TopicSubscriptionBuilder {
	return b.set("processDefinitionKeyIn", v)
}
func (b *recordingBuilder) ProcessDefinitionVersionTag(v string) externaltask.TopicSubscriptionBuilder {
	return b.set("processDefinitionVersionTag", v)
}
func (b *recordingBuilder) WithoutTenantID() externaltask.TopicSubscriptionBuilder {
	return b.set("withoutTenantId")
}
func (b *recordingBuilder) TenantIDIn(v ...string) externaltask.TopicSubscriptionBuilder {
	return b.set("tenantIdIn", v)
}
func (b *recordingBuilder) IncludeExtensionProperties(v bool) externaltask.TopicSubscriptionBuilder {
	return b.set("includeExtensionProperties", v)
}

func (b *recordingBuilder) Open() (externaltask.TopicSubscription, error) {
	if b.client.openErr != nil {
		return nil, b.client.openErr
	}
	b.client.record("open")
	return openedSubscription(b.topicName), nil
}

type openedSubscription string

func (o openedSubscription) TopicName() string { return string(o) }
func (o openedSubscription) Close() error      { return nil }

var noopHandler = externaltask.HandlerFunc(func(ctx context.Context, task externaltask.Task) error { return nil })

// testContext returns a context whose logger writes plain text into the returned builder.
func testContext() (context.Context, *strings.Builder) {
	w := &strings.Builder{}
	logger := log.Configure(w, log.Config{Level: log.Info})
	return log.ContextWithLogger(context.Background(), logger), w
}
