package worker

import (
	"github.com/alecthomas/types/optional"
)

// Override replaces descriptor defaults for the subscription to TopicName.
//
// Only fields that are set are applied.
type Override struct {
	TopicName string
	Options
}

// OverrideSource supplies the override table.
type OverrideSource interface {
	Overrides() OverrideTable
}

// OverrideTable is an ordered list of overrides.
type OverrideTable []Override

var _ OverrideSource = OverrideTable(nil)

func (o OverrideTable) Overrides() OverrideTable { return o }

// Lookup returns the first override for topicName.
func (o OverrideTable) Lookup(topicName string) optional.Option[Override] {
	for _, override := range o {
		if override.TopicName == topicName {
			return optional.Some(override)
		}
	}
	return optional.None[Override]()
}
