package worker

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/types/optional"
)

func TestRegistryDiscoversInRegistrationOrder(t *testing.T) {
	t.Parallel()
	invoice := Descriptor{TopicName: "invoice"}
	ship := Descriptor{TopicName: "ship", Options: Options{BusinessKey: optional.Some("BK1")}}
	registry := NewRegistry(
		Subscription("invoice", invoice, noopHandler),
		Handler("audit", noopHandler),
	)
	registry.Register(
		Handler("ship", noopHandler),
		Describe("ship", ship),
	)

	discovered := registry.Discover()
	assert.Equal(t, 3, len(discovered))
	assert.Equal(t, "invoice", discovered[0].Name)
	assert.Equal(t, optional.Some(invoice), discovered[0].Descriptor)
	assert.Equal(t, "audit", discovered[1].Name)
	assert.False(t, discovered[1].Descriptor.Ok())
	assert.Equal(t, "ship", discovered[2].Name)
	assert.Equal(t, optional.Some(ship), discovered[2].Descriptor)
}

func TestRegistryRejectsDuplicateHandlers(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		NewRegistry(Handler("invoice", noopHandler), Handler("invoice", noopHandler))
	})
}

func TestRegistryRejectsDescriptorWithoutHandler(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		NewRegistry(Describe("unknown", Descriptor{TopicName: "unknown"}))
	})
	assert.Panics(t, func() {
		NewRegistry(Describe("ship", Descriptor{TopicName: "ship"}), Handler("ship", noopHandler))
	})
}
