// Package externaltask is the worker-side contract for subscribing to external
// task topics on a workflow engine, plus an in-process client that keeps the
// opened subscriptions.
//
// Fetching and locking tasks over the wire is not part of this package, and
// no poller ships in this module: the task-worker binary only opens
// subscriptions. An external poller drives the client by handing locked tasks
// to [DefaultClient.Dispatch].
package externaltask

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/block/taskworker/internal/mutex"
)

// Client creates topic subscriptions.
type Client interface {
	// Subscribe starts building a subscription to topicName.
	Subscribe(topicName string) TopicSubscriptionBuilder
}

// TopicSubscriptionBuilder configures a single topic subscription.
//
// Setters may be called more than once; the last call wins.
type TopicSubscriptionBuilder interface {
	Handler(handler Handler) TopicSubscriptionBuilder
	// LockDuration in milliseconds.
	LockDuration(lockDuration int64) TopicSubscriptionBuilder
	Variables(names ...string) TopicSubscriptionBuilder
	LocalVariables(localVariables bool) TopicSubscriptionBuilder
	BusinessKey(businessKey string) TopicSubscriptionBuilder
	ProcessDefinitionID(id string) TopicSubscriptionBuilder
	ProcessDefinitionIDIn(ids ...string) TopicSubscriptionBuilder
	ProcessDefinitionKey(key string) TopicSubscriptionBuilder
	ProcessDefinitionKeyIn(keys ...string) TopicSubscriptionBuilder
	ProcessDefinitionVersionTag(tag string) TopicSubscriptionBuilder
	// WithoutTenantID restricts the subscription to tasks without a tenant.
	WithoutTenantID() TopicSubscriptionBuilder
	TenantIDIn(ids ...string) TopicSubscriptionBuilder
	IncludeExtensionProperties(include bool) TopicSubscriptionBuilder
	// Open the subscription.
	Open() (TopicSubscription, error)
}

// TopicSubscription is an open subscription.
type TopicSubscription interface {
	TopicName() string
	// Close the subscription, freeing its topic on the client.
	Close() error
}

// Config for the in-process client.
type Config struct {
	Endpoint     *url.URL      `help:"Workflow engine REST endpoint." default:"http://127.0.0.1:8080/engine-rest" env:"TASK_WORKER_ENGINE_ENDPOINT"`
	WorkerID     string        `help:"Worker ID reported to the engine. Defaults to the hostname followed by a random UUID." env:"TASK_WORKER_ID"`
	LockDuration time.Duration `help:"Lock duration for subscriptions that do not set one." default:"20s" env:"TASK_WORKER_LOCK_DURATION"`
}

var _ Client = (*DefaultClient)(nil)

// DefaultClient keeps the subscriptions opened against one engine endpoint.
type DefaultClient struct {
	endpoint     *url.URL
	workerID     string
	lockDuration int64

	state *mutex.Mutex[*clientState]
}

type clientState struct {
	subscriptions []*Subscription
	topics        mapset.Set[string]
}

// New creates a client from config.
func New(config Config) (*DefaultClient, error) {
	if config.Endpoint == nil || config.Endpoint.String() == "" {
		return nil, fmt.Errorf("engine endpoint is required")
	}
	if config.LockDuration <= 0 {
		return nil, fmt.Errorf("default lock duration must be positive, got %s", config.LockDuration)
	}
	workerID := config.WorkerID
	if workerID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("failed to determine worker ID: %w", err)
		}
		workerID = hostname + uuid.NewString()
	}
	return &DefaultClient{
		endpoint:     config.Endpoint,
		workerID:     workerID,
		lockDuration: config.LockDuration.Milliseconds(),
		state:        mutex.New(&clientState{topics: mapset.NewThreadUnsafeSet[string]()}),
	}, nil
}

// Endpoint the client is configured for.
func (c *DefaultClient) Endpoint() *url.URL { return c.endpoint }

// WorkerID reported to the engine.
func (c *DefaultClient) WorkerID() string { return c.workerID }

func (c *DefaultClient) Subscribe(topicName string) TopicSubscriptionBuilder {
	return &subscriptionBuilder{client: c, subscription: &Subscription{client: c, topicName: topicName}}
}

// Subscriptions returns the open subscriptions in the order they were opened.
func (c *DefaultClient) Subscriptions() []*Subscription {
	state := c.state.Lock()
	defer c.state.Unlock()
	out := make([]*Subscription, len(state.subscriptions))
	copy(out, state.subscriptions)
	return out
}

// Dispatch hands a locked task to the handler subscribed to its topic.
func (c *DefaultClient) Dispatch(ctx context.Context, task Task) error {
	var handler Handler
	c.state.With(func(state *clientState) {
		for _, s := range state.subscriptions {
			if s.topicName == task.TopicName {
				handler = s.handler
				return
			}
		}
	})
	if handler == nil {
		return fmt.Errorf("%s: %w", task.TopicName, ErrNoSubscription)
	}
	if task.WorkerID == "" {
		task.WorkerID = c.workerID
	}
	if err := handler.HandleTask(ctx, task); err != nil {
		return fmt.Errorf("task %s on topic %s failed: %w", task.ID, task.TopicName, err)
	}
	return nil
}

func (c *DefaultClient) open(s *Subscription) error {
	if s.topicName == "" {
		return fmt.Errorf("topic name cannot be empty: %w", ErrInvalidSubscription)
	}
	if s.handler == nil {
		return fmt.Errorf("topic %q has no handler: %w", s.topicName, ErrInvalidSubscription)
	}
	if lockDuration, ok := s.lockDuration.Get(); ok && lockDuration <= 0 {
		return fmt.Errorf("topic %q lock duration %d is not greater than 0: %w", s.topicName, lockDuration, ErrInvalidSubscription)
	}
	state := c.state.Lock()
	defer c.state.Unlock()
	if state.topics.Contains(s.topicName) {
		return fmt.Errorf("%q: %w", s.topicName, ErrAlreadySubscribed)
	}
	state.topics.Add(s.topicName)
	state.subscriptions = append(state.subscriptions, s)
	return nil
}

func (c *DefaultClient) close(s *Subscription) {
	c.state.With(func(state *clientState) {
		for i, existing := range state.subscriptions {
			if existing == s {
				state.subscriptions = append(state.subscriptions[:i], state.subscriptions[i+1:]...)
				state.topics.Remove(s.topicName)
				return
			}
		}
	})
}
