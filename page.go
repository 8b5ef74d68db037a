package treecmp

import "golang.org/x/text/language"

// Session carries per-visitor state consulted during localization: the
// active locale. Each page owns one; callers serialize access per tree
// instance, so no locking happens here.
type Session struct {
	locale language.Tag
}

// NewSession creates a session with the given locale.
func NewSession(locale language.Tag) *Session {
	return &Session{locale: locale}
}

// Locale returns the session locale.
func (s *Session) Locale() language.Tag {
	return s.locale
}

// SetLocale changes the session locale. Resource models resolve lazily,
// so values computed after the change pick up the new locale.
func (s *Session) SetLocale(tag language.Tag) {
	s.locale = tag
}

// Page is the root of a component tree. It is the only component that can
// be initialized without a parent; children only receive add notifications
// once their page has been initialized:
//
//	page := treecmp.NewPage("home")
//	page.InternalInitialize()
//	page.Add(treecmp.NewLabel("greeting", model))
type Page struct {
	*Base
	session *Session
	app     *Application
}

// NewPage creates a root page owned by the default application.
//
// When embedding Page in a custom type that overrides lifecycle hooks,
// rebind the outer value so the overrides dispatch:
//
//	type homePage struct{ *treecmp.Page }
//
//	p := &homePage{Page: treecmp.NewPage("home")}
//	p.Bind(p)
func NewPage(id string) *Page {
	return Default().NewPage(id)
}

// Session returns the page's session.
func (p *Page) Session() *Session {
	return p.session
}

// App returns the application owning this page.
func (p *Page) App() *Application {
	return p.app
}

// Container is a component that exists to group children. It adds nothing
// beyond the Base machinery.
type Container struct {
	*Base
}

// NewContainer creates an empty container.
func NewContainer(id string) *Container {
	c := &Container{Base: NewBase(id)}
	c.Bind(c)
	return c
}
