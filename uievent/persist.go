package uievent

import (
	"encoding/json"
	"strconv"

	"github.com/iotaledger/oneshot/event"
	"github.com/iotaledger/oneshot/ierrors"
)

var (
	// ErrTagNotPersistable is returned when a UiEvent carries a tag that can not be persisted.
	ErrTagNotPersistable = ierrors.New("tag is not persistable")

	// ErrInvalidEncoding is returned when persisted bytes can not be decoded into a UiEvent.
	ErrInvalidEncoding = ierrors.New("invalid UiEvent encoding")
)

// Transient marks a tag that is excluded from persistence. It is dropped when the UiEvent is persisted and restored
// as nil.
type Transient struct {
	Value any
}

// persistedUiEvent is the persisted representation of a UiEvent.
type persistedUiEvent[T any] struct {
	Kind     string        `json:"kind"`
	Data     *T            `json:"data,omitempty"`
	Emitter  *persistedTag `json:"emitter,omitempty"`
	Receiver *persistedTag `json:"receiver,omitempty"`
}

// persistedTag is the persisted representation of an identity tag that keeps track of its type.
type persistedTag struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Bytes returns the persisted form of the UiEvent.
func (u *UiEvent[T]) Bytes() ([]byte, error) {
	return json.Marshal(u)
}

// FromBytes restores a UiEvent from its persisted form.
func FromBytes[T any](bytes []byte) (*UiEvent[T], error) {
	restored := new(UiEvent[T])
	if err := json.Unmarshal(bytes, restored); err != nil {
		return nil, err
	}

	return restored, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (u *UiEvent[T]) MarshalJSON() ([]byte, error) {
	emitter, err := persistTag(u.tags.Emitter)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to persist emitter")
	}

	receiver, err := persistTag(u.tags.Receiver)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to persist receiver")
	}

	persisted := persistedUiEvent[T]{
		Kind:     u.kind.String(),
		Emitter:  emitter,
		Receiver: receiver,
	}

	if u.kind == event.KindTriggered {
		data := u.data
		persisted.Data = &data
	}

	return json.Marshal(persisted)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *UiEvent[T]) UnmarshalJSON(bytes []byte) error {
	var persisted persistedUiEvent[T]
	if err := json.Unmarshal(bytes, &persisted); err != nil {
		return ierrors.Wrapf(ErrInvalidEncoding, "failed to parse json: %s", err)
	}

	emitter, err := restoreTag(persisted.Emitter)
	if err != nil {
		return ierrors.Wrap(err, "failed to restore emitter")
	}

	receiver, err := restoreTag(persisted.Receiver)
	if err != nil {
		return ierrors.Wrap(err, "failed to restore receiver")
	}

	switch persisted.Kind {
	case event.KindTriggered.String():
		var data T
		if persisted.Data != nil {
			data = *persisted.Data
		}

		*u = *NewTriggered(data, event.WithEmitter(emitter), event.WithReceiver(receiver))
	case event.KindConsumed.String():
		*u = *NewConsumed[T](event.WithEmitter(emitter), event.WithReceiver(receiver))
	default:
		return ierrors.Wrapf(ErrInvalidEncoding, "unknown kind %q", persisted.Kind)
	}

	return nil
}

// persistTag converts the given identity tag into its persisted form (nil means that nothing is persisted).
func persistTag(tag event.Identity) (*persistedTag, error) {
	switch typedTag := tag.(type) {
	case nil, Transient, *Transient:
		return nil, nil
	case string:
		return &persistedTag{Type: "string", Value: typedTag}, nil
	case bool:
		return &persistedTag{Type: "bool", Value: strconv.FormatBool(typedTag)}, nil
	case int:
		return &persistedTag{Type: "int", Value: strconv.FormatInt(int64(typedTag), 10)}, nil
	case int32:
		return &persistedTag{Type: "int32", Value: strconv.FormatInt(int64(typedTag), 10)}, nil
	case int64:
		return &persistedTag{Type: "int64", Value: strconv.FormatInt(typedTag, 10)}, nil
	case uint:
		return &persistedTag{Type: "uint", Value: strconv.FormatUint(uint64(typedTag), 10)}, nil
	case uint32:
		return &persistedTag{Type: "uint32", Value: strconv.FormatUint(uint64(typedTag), 10)}, nil
	case uint64:
		return &persistedTag{Type: "uint64", Value: strconv.FormatUint(typedTag, 10)}, nil
	default:
		return nil, ierrors.Wrapf(ErrTagNotPersistable, "unsupported tag type %T (wrap it in uievent.Transient to exclude it)", tag)
	}
}

// restoreTag converts a persisted tag back into an identity tag.
func restoreTag(tag *persistedTag) (event.Identity, error) {
	if tag == nil {
		return nil, nil
	}

	switch tag.Type {
	case "string":
		return tag.Value, nil
	case "bool":
		value, err := strconv.ParseBool(tag.Value)
		return wrapParseError(value, err)
	case "int":
		value, err := strconv.ParseInt(tag.Value, 10, strconv.IntSize)
		return wrapParseError(int(value), err)
	case "int32":
		value, err := strconv.ParseInt(tag.Value, 10, 32)
		return wrapParseError(int32(value), err)
	case "int64":
		value, err := strconv.ParseInt(tag.Value, 10, 64)
		return wrapParseError(value, err)
	case "uint":
		value, err := strconv.ParseUint(tag.Value, 10, strconv.IntSize)
		return wrapParseError(uint(value), err)
	case "uint32":
		value, err := strconv.ParseUint(tag.Value, 10, 32)
		return wrapParseError(uint32(value), err)
	case "uint64":
		value, err := strconv.ParseUint(tag.Value, 10, 64)
		return wrapParseError(value, err)
	default:
		return nil, ierrors.Wrapf(ErrInvalidEncoding, "unknown tag type %q", tag.Type)
	}
}

// wrapParseError converts a parsing result into a restored tag.
func wrapParseError[V any](value V, err error) (event.Identity, error) {
	if err != nil {
		return nil, ierrors.Wrapf(ErrInvalidEncoding, "failed to parse tag: %s", err)
	}

	return value, nil
}
