package event

import (
	"github.com/iotaledger/oneshot/runtime/options"
)

// Tags holds the identity tags of an Event.
type Tags struct {
	// Emitter identifies the origin of the Event.
	Emitter Identity

	// Receiver identifies the designated receiver of the Event.
	Receiver Identity
}

// WithEmitter sets the identity of the emitter of the Event.
func WithEmitter(emitter Identity) options.Option[Tags] {
	return func(tags *Tags) {
		tags.Emitter = emitter
	}
}

// WithReceiver sets the identity of the designated receiver of the Event.
func WithReceiver(receiver Identity) options.Option[Tags] {
	return func(tags *Tags) {
		tags.Receiver = receiver
	}
}

// WithTags copies the given Tags.
func WithTags(source Tags) options.Option[Tags] {
	return func(tags *Tags) {
		*tags = source
	}
}
