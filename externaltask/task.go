package externaltask

import (
	"context"
	"time"

	"github.com/alecthomas/types/optional"
)

// Task is an external task locked by this worker.
type Task struct {
	ID                          string
	TopicName                   string
	WorkerID                    string
	ActivityID                  string
	ProcessInstanceID           string
	ProcessDefinitionID         string
	ProcessDefinitionKey        string
	ProcessDefinitionVersionTag string
	BusinessKey                 string
	TenantID                    optional.Option[string]
	Priority                    int64
	Retries                     optional.Option[int]
	LockExpirationTime          time.Time
	Variables                   map[string]any
	ExtensionProperties         map[string]string
}

// Handler executes the work for a single task.
type Handler interface {
	HandleTask(ctx context.Context, task Task) error
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(ctx context.Context, task Task) error

func (f HandlerFunc) HandleTask(ctx context.Context, task Task) error { return f(ctx, task) }
