package externaltask

import "errors"

var (
	// ErrInvalidSubscription is returned by Open when the configured subscription is rejected.
	ErrInvalidSubscription = errors.New("invalid topic subscription")
	// ErrAlreadySubscribed is returned by Open when the topic already has a subscription on the client.
	ErrAlreadySubscribed = errors.New("topic already subscribed")
	// ErrNoSubscription is returned by Dispatch when no subscription exists for the task's topic.
	ErrNoSubscription = errors.New("no subscription for topic")
)
