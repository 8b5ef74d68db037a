package treecmp

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pthm/treecmp/lib/interpolate"
)

// ResourceModel resolves a resource key to a localized, substituted
// string. It combines the bundle search with property expressions, which
// covers most dynamic localization needs:
//
//   - The key itself may contain ${path} placeholders evaluated against
//     the bound substitution model, so "weather.${currentStatus}" selects
//     a different entry as the station's status changes.
//   - The found bundle string goes through the same substitution, so
//     "temperature is ${currentTemperature}" renders live values, with
//     numbers formatted for the active locale.
//   - Several named models can be bound; bundle strings then dispatch with
//     "${name.path}" expressions, and unprefixed paths fall through to the
//     unnamed model.
//
// Construction is fluent:
//
//	m := treecmp.NewResource("weather.detail").
//	    Relative(page).
//	    BindNamed("date", treecmp.Of(time.Now())).
//	    BindNamed("ws", stationModel).
//	    Bind(stationModel)
//
// The named-model mapping is fixed after construction; reads go through a
// read-only view. The model's value is always derived: SetObject fails
// with ErrReadOnly.
type ResourceModel struct {
	key       string
	component Component
	names     []string
	models    map[string]Model
	def       Model
	localizer *Localizer

	attached bool
	value    string
}

// NewResource creates a resource model for the given key. Panics on an
// empty key; a key-less model could never resolve and the mistake should
// surface at construction.
func NewResource(key string) *ResourceModel {
	if key == "" {
		panic("treecmp: resource key must not be empty")
	}
	return &ResourceModel{
		key:    key,
		models: make(map[string]Model),
	}
}

// Relative fixes the component the resource is resolved against. A model
// with an explicit relative component ignores later assignment to a
// widget; without one, assignment wraps the model to resolve relative to
// the assigned widget.
func (m *ResourceModel) Relative(c Component) *ResourceModel {
	m.component = c
	return m
}

// Bind registers the unnamed substitution model. Unprefixed ${path}
// expressions in the key and in found strings evaluate against its
// current value.
func (m *ResourceModel) Bind(sub Model) *ResourceModel {
	return m.BindNamed("", sub)
}

// BindNamed registers a substitution model under a name; ${name.path}
// expressions dispatch to it. Binding the same name again replaces the
// model.
func (m *ResourceModel) BindNamed(name string, sub Model) *ResourceModel {
	if _, dup := m.models[name]; !dup {
		m.names = append(m.names, name)
	}
	m.models[name] = sub
	return m
}

// Default supplies a value used when the key has no bundle entry. The
// default participates in substitution and is detached with the rest.
func (m *ResourceModel) Default(def Model) *ResourceModel {
	m.def = def
	return m
}

// Localizer overrides the localizer; otherwise the owning page's
// application (or the default application) supplies one.
func (m *ResourceModel) Localizer(l *Localizer) *ResourceModel {
	m.localizer = l
	return m
}

// Key returns the raw, unsubstituted resource key.
func (m *ResourceModel) Key() string {
	return m.key
}

// ResolvedKey returns the key with all ${path} placeholders substituted
// against the bound models. Without a substitution model the raw key is
// returned unchanged. The result can change between calls as the bound
// values change.
func (m *ResourceModel) ResolvedKey() (string, error) {
	return m.resolveKey(m.localeFor(m.component))
}

// Value computes the localized string for the current model values. It is
// not cached; use Object for the per-attach-cycle cached form.
func (m *ResourceModel) Value() (string, error) {
	return m.loadFor(m.component)
}

// Object returns the localized string, computed once per attach cycle and
// cached until the next Detach.
func (m *ResourceModel) Object() (any, error) {
	if !m.attached {
		v, err := m.loadFor(m.component)
		if err != nil {
			return nil, err
		}
		m.value = v
		m.attached = true
	}
	return m.value, nil
}

// Attached reports whether a computed value is currently cached.
func (m *ResourceModel) Attached() bool {
	return m.attached
}

// SetObject always fails: the value is derived from the key, the bundles
// and the substitution models, never stored.
func (m *ResourceModel) SetObject(any) error {
	return ErrReadOnly
}

// Detach drops the cached value and unconditionally detaches every
// substitution model and the default model. Owned models are released
// even when this model was never read.
func (m *ResourceModel) Detach() {
	m.attached = false
	m.value = ""

	for _, name := range m.names {
		if sub := m.models[name]; sub != nil {
			sub.Detach()
		}
	}
	if m.def != nil {
		m.def.Detach()
	}
}

// WrapOnAssignment returns a wrapper resolving relative to the assigned
// component. When an explicit relative component was given at
// construction it wins: the wrapper just delegates to this model.
func (m *ResourceModel) WrapOnAssignment(c Component) Model {
	return &assignmentWrapper{outer: m, component: c}
}

// String returns debug information; use Value for the localized string.
func (m *ResourceModel) String() string {
	return fmt.Sprintf("resource[key:%s default:%v]", m.key, m.def)
}

// substitutionTarget returns the value property expressions evaluate
// against: nil without models, the unnamed model's current value when it
// is the only one, and otherwise a read-only view dispatching by name.
func (m *ResourceModel) substitutionTarget() (any, error) {
	if len(m.models) == 0 {
		return nil, nil
	}
	if len(m.models) == 1 {
		if sub, ok := m.models[""]; ok {
			if sub == nil {
				return nil, nil
			}
			return sub.Object()
		}
	}
	return modelView{models: m.models}, nil
}

func (m *ResourceModel) resolveKey(locale language.Tag) (string, error) {
	target, err := m.substitutionTarget()
	if err != nil {
		return "", err
	}
	if target == nil {
		return m.key, nil
	}
	return interpolate.Interpolate(m.key, target, message.NewPrinter(locale))
}

// loadFor computes the localized string relative to the given component,
// which differs from the construction-time component only for assignment
// wrappers.
func (m *ResourceModel) loadFor(relative Component) (string, error) {
	locale := m.localeFor(relative)

	key, err := m.resolveKey(locale)
	if err != nil {
		return "", err
	}
	target, err := m.substitutionTarget()
	if err != nil {
		return "", err
	}

	lookup := m.localizerFor(relative).Lookup(key).
		Relative(relative).
		Substitute(target).
		Locale(locale)

	if m.def != nil {
		dv, err := m.def.Object()
		if err != nil {
			return "", err
		}
		lookup = lookup.DefaultTo(interpolate.Format(dv, message.NewPrinter(locale)))
	}

	return lookup.String()
}

func (m *ResourceModel) localeFor(relative Component) language.Tag {
	if relative != nil {
		return LocaleOf(relative)
	}
	return Default().DefaultLocale()
}

func (m *ResourceModel) localizerFor(relative Component) *Localizer {
	if m.localizer != nil {
		return m.localizer
	}
	if relative != nil {
		return relative.base().appFor().Localizer()
	}
	return Default().Localizer()
}

// modelView is the read-only multi-model view handed to the property
// interpolator. Get resolves a name to the named model's current value;
// the empty name exposes the unnamed model as the fallback target.
type modelView struct {
	models map[string]Model
}

func (v modelView) Get(name string) (any, bool) {
	sub, ok := v.models[name]
	if !ok || sub == nil {
		return nil, false
	}
	val, err := sub.Object()
	if err != nil {
		return nil, false
	}
	return val, true
}

// assignmentWrapper resolves an un-anchored resource model relative to the
// component it was assigned to. Each wrapper caches independently, so the
// same model assigned to two widgets resolves for each without shared
// state. Detaching a wrapper always performs the full outer detach, which
// releases the substitution models and the default exactly once.
type assignmentWrapper struct {
	outer     *ResourceModel
	component Component

	attached bool
	value    string
}

func (w *assignmentWrapper) Object() (any, error) {
	if !w.attached {
		var v string
		var err error
		if w.outer.component != nil {
			// An explicit component was given at construction; the
			// assignment is ignored and the outer model's cache applies.
			var o any
			o, err = w.outer.Object()
			if err == nil {
				v = o.(string)
			}
		} else {
			v, err = w.outer.loadFor(w.component)
		}
		if err != nil {
			return nil, err
		}
		w.value = v
		w.attached = true
	}
	return w.value, nil
}

func (w *assignmentWrapper) SetObject(v any) error {
	return w.outer.SetObject(v)
}

func (w *assignmentWrapper) Detach() {
	w.attached = false
	w.value = ""
	w.outer.Detach()
}

// Wrapped returns the resource model behind this wrapper.
func (w *assignmentWrapper) Wrapped() Model {
	return w.outer
}
