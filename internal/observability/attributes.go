package observability

const (
	TopicNameAttribute     = "taskworker.topic.name"
	HandlerNameAttribute   = "taskworker.handler.name"
	OutcomeStatusAttribute = "taskworker.outcome.status"
	OverriddenAttribute    = "taskworker.subscription.overridden"

	SuccessStatus = "success"
	FailureStatus = "failure"
)
