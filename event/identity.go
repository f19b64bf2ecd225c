package event

import (
	"reflect"
)

// Identity is an opaque tag that identifies the emitter or the receiver of an Event.
//
// Any value can be used as an Identity, but it should be comparable so that it can be used for matching. Values
// that are not comparable are compared by deep equality.
type Identity = any

// IdentityEqual returns true if both identities are equal.
func IdentityEqual(a, b Identity) (equal bool) {
	defer func() {
		// comparing interfaces that hold non-comparable values panics
		if recover() != nil {
			equal = reflect.DeepEqual(a, b)
		}
	}()

	return a == b
}
