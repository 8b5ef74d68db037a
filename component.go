package treecmp

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	flagPage = 1 << iota
	flagInitialized
)

// Component is a node in a page tree.
//
// Concrete components embed *Base, which provides identity, tree linkage,
// and the lifecycle hook implementations. The embedding pattern promotes
// the framework methods directly onto the user's component type:
//
//	type StatusLabel struct {
//	    *treecmp.Label
//	    visits int
//	}
//
// Because base is unexported, only types embedding *Base can satisfy this
// interface, which keeps the lifecycle bookkeeping in one place.
type Component interface {
	// ID returns the identifier of this component, unique among its
	// siblings.
	ID() string

	// Path returns the colon-separated chain of IDs from the root down to
	// this component, e.g. "page:sidebar:status".
	Path() string

	base() *Base
}

// Base carries the per-instance lifecycle state shared by all components.
//
// Create one with NewBase and embed the pointer. Components that override
// a lifecycle hook must chain to the Base implementation; the framework
// verifies the chain at each transition (see Hook).
type Base struct {
	id       string
	self     Component
	parent   *Base
	children []Component
	bundle   *Bundle
	locale   language.Tag
	flags    uint8
	acks     uint8
}

// NewBase creates the embeddable component core. Panics if id is empty,
// since an unidentifiable component can never be addressed in a tree.
func NewBase(id string) *Base {
	if id == "" {
		panic("treecmp: component id must not be empty")
	}
	return &Base{id: id}
}

// ID returns the component's identifier.
func (b *Base) ID() string {
	return b.id
}

// Path returns the colon-separated IDs from the root to this component.
func (b *Base) Path() string {
	if b.parent == nil {
		return b.id
	}
	return b.parent.Path() + ":" + b.id
}

func (b *Base) base() *Base {
	return b
}

// Bind records the concrete value embedding this Base so lifecycle hooks
// and rendering dispatch to the outermost type. Add binds children
// automatically; call Bind yourself only for root components of custom
// types:
//
//	type myPage struct{ *treecmp.Page }
//
//	p := &myPage{Page: treecmp.NewPage("home")}
//	p.Bind(p)
func (b *Base) Bind(outer Component) {
	b.self = outer
}

// outer returns the bound embedding value, or the Base itself when the
// component was never bound.
func (b *Base) outer() Component {
	if b.self != nil {
		return b.self
	}
	return b
}

// Parent returns the containing component, or nil for a root.
func (b *Base) Parent() Component {
	if b.parent == nil {
		return nil
	}
	return b.parent.outer()
}

// Children returns the child components in insertion order.
func (b *Base) Children() []Component {
	out := make([]Component, len(b.children))
	copy(out, b.children)
	return out
}

// Initialized reports whether the initialization hook has run for this
// component. Initialization happens exactly once per instance.
func (b *Base) Initialized() bool {
	return b.flags&flagInitialized != 0
}

// SetBundle attaches a resource bundle to this component. Localized
// lookups relative to a component search its own bundle first, then its
// ancestors', then the application's global bundles.
func (b *Base) SetBundle(bundle *Bundle) {
	b.bundle = bundle
}

// SetLocale overrides the locale for this component and its descendants.
// Without an override the locale comes from the nearest ancestor override,
// then the page session, then the application default.
func (b *Base) SetLocale(tag language.Tag) {
	b.locale = tag
}

// Find resolves a colon-separated path of child IDs relative to this
// component. Returns false if any segment is missing.
func (b *Base) Find(path string) (Component, bool) {
	cur := b
	for _, id := range strings.Split(path, ":") {
		var next *Base
		for _, child := range cur.children {
			if child.ID() == id {
				next = child.base()
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur.outer(), true
}

// Detach releases transient state at a request boundary. The default
// implementation recurses into children; components owning models shadow
// it to detach them first (see Label.Detach).
func (b *Base) Detach() {
	for _, child := range b.children {
		child.(interface{ Detach() }).Detach()
	}
}

// rootBase walks to the top of the tree.
func (b *Base) rootBase() *Base {
	cur := b
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// connected reports whether this component is reachable from an
// initialized root page. Only connected subtrees receive add
// notifications.
func (b *Base) connected() bool {
	root := b.rootBase()
	return root.flags&flagPage != 0 && root.flags&flagInitialized != 0
}

// sessionFor returns the session of the page this component belongs to,
// or nil when the component is not part of a page tree.
func (b *Base) sessionFor() *Session {
	root := b.rootBase()
	if root.flags&flagPage == 0 {
		return nil
	}
	if holder, ok := root.outer().(interface{ Session() *Session }); ok {
		return holder.Session()
	}
	return nil
}

// appFor returns the application owning this component's page, falling
// back to the process-wide default application.
func (b *Base) appFor() *Application {
	root := b.rootBase()
	if root.flags&flagPage != 0 {
		if holder, ok := root.outer().(interface{ App() *Application }); ok {
			if app := holder.App(); app != nil {
				return app
			}
		}
	}
	return Default()
}

// LocaleOf returns the effective locale of a component: the component's
// own override, else the nearest ancestor override, else the page session
// locale, else the application default.
func LocaleOf(c Component) language.Tag {
	b := c.base()
	for cur := b; cur != nil; cur = cur.parent {
		if cur.locale != language.Und {
			return cur.locale
		}
	}
	if s := b.sessionFor(); s != nil && s.Locale() != language.Und {
		return s.Locale()
	}
	return b.appFor().DefaultLocale()
}

// String returns debug information, not the rendered output.
func (b *Base) String() string {
	return fmt.Sprintf("component[path:%s initialized:%t]", b.Path(), b.Initialized())
}
