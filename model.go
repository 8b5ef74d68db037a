package treecmp

import (
	"fmt"

	"github.com/pthm/treecmp/lib/interpolate"
)

// Model is a value holder bound to a component.
//
// The capability set is deliberately small: produce the current value,
// accept a new value (optionally unsupported), and release cached state.
// Derived models return ErrReadOnly from SetObject; Detach is always safe
// to call, repeatedly and regardless of whether the model was ever read.
type Model interface {
	Object() (any, error)
	SetObject(v any) error
	Detach()
}

// AssignableModel is implemented by models that resolve relative to the
// component they end up assigned to. When a widget takes ownership of such
// a model it calls WrapOnAssignment and uses the returned wrapper instead.
type AssignableModel interface {
	Model
	WrapOnAssignment(c Component) Model
}

// WrapModel is implemented by assignment wrappers so the original model
// remains reachable.
type WrapModel interface {
	Model
	Wrapped() Model
}

// Value is a simple generic holder. The zero value holds T's zero value.
type Value[T any] struct {
	v T
}

// Of wraps a value in a Value model:
//
//	status := treecmp.Of("sunny")
func Of[T any](v T) *Value[T] {
	return &Value[T]{v: v}
}

// Object returns the held value.
func (m *Value[T]) Object() (any, error) {
	return m.v, nil
}

// Get returns the held value with its static type.
func (m *Value[T]) Get() T {
	return m.v
}

// Set replaces the held value.
func (m *Value[T]) Set(v T) {
	m.v = v
}

// SetObject replaces the held value, rejecting values of the wrong type.
func (m *Value[T]) SetObject(v any) error {
	t, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: cannot hold %T", ErrTypeMismatch, v)
	}
	m.v = t
	return nil
}

// Detach is a no-op; a Value holds no transient state.
func (m *Value[T]) Detach() {}

// Loadable computes its value on first access and caches it until the
// next Detach. Use it for values that are expensive to produce and must
// not survive a request boundary:
//
//	stations := treecmp.NewLoadable(func() ([]Station, error) {
//	    return repo.ActiveStations(ctx)
//	})
type Loadable[T any] struct {
	load     func() (T, error)
	attached bool
	v        T
}

// NewLoadable creates a lazy model from a load function.
func NewLoadable[T any](load func() (T, error)) *Loadable[T] {
	return &Loadable[T]{load: load}
}

// Object returns the cached value, loading it first if needed.
func (m *Loadable[T]) Object() (any, error) {
	if !m.attached {
		v, err := m.load()
		if err != nil {
			return nil, err
		}
		m.v = v
		m.attached = true
	}
	return m.v, nil
}

// Attached reports whether a value is currently cached.
func (m *Loadable[T]) Attached() bool {
	return m.attached
}

// SetObject fails; a loadable value is derived, never stored.
func (m *Loadable[T]) SetObject(any) error {
	return ErrReadOnly
}

// Detach drops the cached value. The next Object call loads again.
func (m *Loadable[T]) Detach() {
	var zero T
	m.v = zero
	m.attached = false
}

// Property is a read-only model that evaluates a property path against a
// target on every access. The target may itself be a Model, in which case
// the path is evaluated against its current value and Detach forwards to
// it.
//
//	temp := treecmp.NewProperty(stationModel, "currentTemperature")
type Property struct {
	target any
	path   string
}

// NewProperty creates a property-path model.
func NewProperty(target any, path string) *Property {
	return &Property{target: target, path: path}
}

// Object evaluates the path against the target's current value.
func (m *Property) Object() (any, error) {
	target := m.target
	if nested, ok := target.(Model); ok {
		v, err := nested.Object()
		if err != nil {
			return nil, err
		}
		target = v
	}
	v, err := interpolate.Resolve(target, m.path)
	if err != nil {
		return nil, fmt.Errorf("treecmp: property %q: %w", m.path, err)
	}
	return v, nil
}

// SetObject fails; property models resolve, they do not assign.
func (m *Property) SetObject(any) error {
	return ErrReadOnly
}

// Detach forwards to a nested Model target, if any.
func (m *Property) Detach() {
	if nested, ok := m.target.(Model); ok {
		nested.Detach()
	}
}
