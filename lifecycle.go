package treecmp

import "fmt"

// Hook identifies a lifecycle transition point.
//
// Each hook has a Base implementation that acknowledges the transition by
// setting a per-instance flag. A component overriding a hook must chain to
// the Base implementation:
//
//	func (l *StatusLabel) OnAddToPage() {
//	    l.Label.OnAddToPage()
//	    l.visits++
//	}
//
// After dispatching a hook the framework checks the acknowledgment and
// panics, naming the unchained call, if the override swallowed it. The
// check makes a forgotten chain fail at the transition instead of
// corrupting lifecycle state later.
type Hook uint8

const (
	// HookInitialize fires exactly once per component instance, when it
	// first becomes part of an initialized tree (or is initialized
	// directly via InternalInitialize).
	HookInitialize Hook = iota

	// HookAddToPage fires every time the component becomes reachable from
	// an initialized root page, including re-adds.
	HookAddToPage

	// HookReAdd fires, before HookAddToPage, when an already-initialized
	// component becomes reachable again after having been removed.
	HookReAdd

	// HookRemove fires when the component leaves a connected tree.
	HookRemove
)

// String returns the hook's method name.
func (h Hook) String() string {
	switch h {
	case HookInitialize:
		return "OnInitialize"
	case HookAddToPage:
		return "OnAddToPage"
	case HookReAdd:
		return "OnReAdd"
	case HookRemove:
		return "OnRemove"
	}
	return fmt.Sprintf("Hook(%d)", uint8(h))
}

// OnInitialize acknowledges the initialization transition. Overrides must
// chain to this implementation.
func (b *Base) OnInitialize() { b.acks |= 1 << HookInitialize }

// OnAddToPage acknowledges the added-to-page transition. Overrides must
// chain to this implementation.
func (b *Base) OnAddToPage() { b.acks |= 1 << HookAddToPage }

// OnReAdd acknowledges the re-add transition. Overrides must chain to
// this implementation.
func (b *Base) OnReAdd() { b.acks |= 1 << HookReAdd }

// OnRemove acknowledges the removal transition. Overrides must chain to
// this implementation.
func (b *Base) OnRemove() { b.acks |= 1 << HookRemove }

// fire dispatches a hook through the bound outer value and verifies that
// the Base implementation acknowledged it.
func (b *Base) fire(h Hook) {
	b.acks &^= 1 << h

	c := b.outer()
	switch h {
	case HookInitialize:
		c.(interface{ OnInitialize() }).OnInitialize()
	case HookAddToPage:
		c.(interface{ OnAddToPage() }).OnAddToPage()
	case HookReAdd:
		c.(interface{ OnReAdd() }).OnReAdd()
	case HookRemove:
		c.(interface{ OnRemove() }).OnRemove()
	}

	if b.acks&(1<<h) == 0 {
		panic(fmt.Sprintf("treecmp: %s on component %q did not call Base.%s",
			h, b.Path(), h))
	}
}

// InternalInitialize runs the initialization hook for this component and
// every child already present. It is idempotent: the hook fires at most
// once per instance.
//
// On a root page the first call also connects pre-added children, firing
// their deferred add notifications. On any other component it only
// initializes; add notifications wait until the subtree is connected to an
// initialized page.
func (b *Base) InternalInitialize() {
	if b.flags&flagPage != 0 {
		first := !b.Initialized()
		b.initializeSelf()
		if first {
			for _, child := range b.children {
				connect(child)
			}
		}
		return
	}
	b.initializeTree()
}

func (b *Base) initializeSelf() {
	if b.Initialized() {
		return
	}
	b.flags |= flagInitialized
	b.fire(HookInitialize)
}

func (b *Base) initializeTree() {
	b.initializeSelf()
	for _, child := range b.children {
		child.base().initializeTree()
	}
}

// Add links children into this container. The returned value is the
// container itself (its bound outer), so adds can be chained:
//
//	page.Add(treecmp.NewContainer("side").Add(label))
//
// If the container is connected to an initialized root page, each child is
// initialized as needed and notified immediately; otherwise notification
// is deferred until the subtree becomes connected. Panics on a duplicate
// child ID and on a child that already has a parent.
func (b *Base) Add(children ...Component) Component {
	for _, child := range children {
		cb := child.base()
		if cb == b {
			panic(fmt.Sprintf("treecmp: cannot add component %q to itself", b.id))
		}
		if cb.parent != nil {
			panic(fmt.Sprintf("treecmp: component %q already has a parent", cb.Path()))
		}
		for _, sibling := range b.children {
			if sibling.ID() == cb.id {
				panic(fmt.Sprintf("treecmp: component %q already has a child with id %q",
					b.Path(), cb.id))
			}
		}

		cb.Bind(child)
		cb.parent = b
		b.children = append(b.children, child)

		if b.connected() {
			connect(child)
		}
	}
	return b.outer()
}

// connect notifies a subtree that it became reachable from an initialized
// root page. Recursion is depth-first over children in insertion order, so
// each affected component sees exactly one notification per transition.
//
// A component that was never initialized is initialized here and receives
// the first-add notification. A component that was already initialized is
// treated as re-added: it receives OnReAdd and then OnAddToPage.
func connect(c Component) {
	cb := c.base()
	readd := cb.Initialized()

	if !readd {
		cb.flags |= flagInitialized
		cb.fire(HookInitialize)
	} else {
		cb.fire(HookReAdd)
	}
	cb.fire(HookAddToPage)

	for _, child := range cb.children {
		connect(child)
	}
}

// Remove unlinks a child from this container. If the subtree was connected
// to an initialized root, the removal hook fires depth-first through it.
// The child keeps its initialization history, so adding it back later
// takes the re-add path. Panics if the component is not a child.
func (b *Base) Remove(child Component) {
	cb := child.base()
	idx := -1
	for i, existing := range b.children {
		if existing.base() == cb {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(fmt.Sprintf("treecmp: component %q is not a child of %q", cb.id, b.Path()))
	}

	wasConnected := b.connected()
	b.children = append(b.children[:idx], b.children[idx+1:]...)
	cb.parent = nil

	if wasConnected {
		fireRemove(child)
	}
}

// RemoveFromParent unlinks this component from its container. It is a
// no-op on a root.
func (b *Base) RemoveFromParent() {
	if b.parent != nil {
		b.parent.Remove(b.outer())
	}
}

func fireRemove(c Component) {
	cb := c.base()
	cb.fire(HookRemove)
	for _, child := range cb.children {
		fireRemove(child)
	}
}
