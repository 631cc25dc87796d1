package wire

import (
	"errors"
	"fmt"
)

// ComponentID identifies a component type.
type ComponentID uint32

// ErrComponentMismatch is returned when a buffer is decoded as a component
// it does not belong to.
var ErrComponentMismatch = errors.New("component id mismatch")

// CheckComponent fails unless got is the expected component id.
func CheckComponent(want, got ComponentID) error {
	if want != got {
		return fmt.Errorf("%w: want %d, got %d", ErrComponentMismatch, want, got)
	}

	return nil
}

// ComponentData is the self-contained buffer holding the full state of one
// component instance.
type ComponentData struct {
	ID     ComponentID
	fields Object
}

// NewComponentData returns an empty data buffer for the component id.
func NewComponentData(id ComponentID) *ComponentData {
	return &ComponentData{ID: id, fields: NewObject()}
}

// WrapComponentData returns a data buffer over an existing fields object.
func WrapComponentData(id ComponentID, fields Object) *ComponentData {
	return &ComponentData{ID: id, fields: fields}
}

// Fields returns the object carrying the component fields.
func (d *ComponentData) Fields() Object {
	if d.fields == nil {
		d.fields = NewObject()
	}

	return d.fields
}

// ComponentUpdate is the buffer carrying a delta for one component instance.
type ComponentUpdate struct {
	ID     ComponentID
	fields Object
}

// NewComponentUpdate returns an empty update buffer for the component id.
func NewComponentUpdate(id ComponentID) *ComponentUpdate {
	return &ComponentUpdate{ID: id, fields: NewObject()}
}

// WrapComponentUpdate returns an update buffer over an existing fields object.
func WrapComponentUpdate(id ComponentID, fields Object) *ComponentUpdate {
	return &ComponentUpdate{ID: id, fields: fields}
}

// Fields returns the object carrying the changed fields.
func (u *ComponentUpdate) Fields() Object {
	if u.fields == nil {
		u.fields = NewObject()
	}

	return u.fields
}
