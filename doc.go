// Package treecmp provides a server-side component system where pages are
// trees of stateful components whose lifecycle and localized values are
// managed by the framework.
//
// Components are plain Go types embedding *Base (or one of the provided
// widgets such as Label, Container, Page). The embedding pattern promotes
// the framework's tree and lifecycle methods directly onto the user's
// type, and shadowed methods override framework behavior.
//
// # Lifecycle
//
// A component is constructed detached. Adding it to a container links its
// parent reference; once the subtree is reachable from an initialized root
// page, the component is initialized (exactly once per instance) and
// notified that it was added. Removing and re-adding a component fires the
// re-add notification before the add notification, so components can tell
// the transitions apart.
//
// Four hooks mark the transitions: OnInitialize, OnAddToPage, OnReAdd and
// OnRemove. Overrides must chain to the Base implementation:
//
//	type counter struct {
//	    *treecmp.Label
//	    adds int
//	}
//
//	func (c *counter) OnAddToPage() {
//	    c.Label.OnAddToPage()
//	    c.adds++
//	}
//
// The framework verifies the chain on every transition and panics, naming
// the missing Base call, when an override swallows it. A forgotten chain
// is a bug that would otherwise corrupt lifecycle state silently.
//
// # Models
//
// Components display values held by models: simple holders (Of), lazily
// loaded caches (NewLoadable), property paths (NewProperty), and the
// localized ResourceModel. Models release transient state when their
// component detaches at the end of a request; detaching is always safe,
// repeatable, and forwarded to nested models.
//
// # Localized resources
//
// ResourceModel resolves a resource key against locale-sectioned YAML
// bundles, searching relative to a component (its own bundle, then its
// ancestors', then the application's). Both the key and the found string
// may contain ${path} property expressions evaluated against bound
// substitution models, with numbers formatted for the active locale:
//
//	status := treecmp.NewResource("weather.${currentStatus}").
//	    Relative(page).
//	    Bind(stationModel)
//
// A resource model built without an explicit relative component is
// wrapped when assigned to a widget and resolves relative to that widget.
//
// # Rendering
//
// Every component renders as a templ.Component: labels emit their model
// value, containers wrap their children. Render writes a tree to an HTTP
// response; RefreshToken and ResolveRefresh carry a tamper-proof component
// reference across request cycles.
//
// # Concurrency
//
// A component tree and its models belong to a single in-flight request;
// callers serialize access per tree instance. Application and Localizer
// are safe for concurrent use.
package treecmp
