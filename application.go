package treecmp

import (
	"sync"

	"golang.org/x/text/language"
)

// Application holds the configuration shared by all pages of a deployment:
// the localizer with its global bundles and the default locale.
//
// Most programs use the process-wide default application:
//
//	treecmp.Default().Localizer().AddBundle(bundle)
//	page := treecmp.NewPage("home")
//
// Multi-tenant setups create their own and mint pages from it.
type Application struct {
	mu        sync.RWMutex
	localizer *Localizer
	locale    language.Tag
}

// NewApplication creates an application with an empty localizer and
// English as the default locale.
func NewApplication() *Application {
	return &Application{
		localizer: NewLocalizer(),
		locale:    language.English,
	}
}

// Localizer returns the application's localizer.
func (a *Application) Localizer() *Localizer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.localizer
}

// SetLocalizer replaces the application's localizer.
func (a *Application) SetLocalizer(l *Localizer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.localizer = l
}

// DefaultLocale returns the locale used when neither a component nor a
// session supplies one.
func (a *Application) DefaultLocale() language.Tag {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.locale
}

// SetDefaultLocale changes the application's fallback locale.
func (a *Application) SetDefaultLocale(tag language.Tag) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.locale = tag
}

// NewPage creates a root page owned by this application. The page session
// starts with the application's default locale.
func (a *Application) NewPage(id string) *Page {
	p := &Page{
		Base:    NewBase(id),
		session: NewSession(a.DefaultLocale()),
		app:     a,
	}
	p.flags |= flagPage
	p.Bind(p)
	return p
}

var defaultApp = NewApplication()

// Default returns the process-wide default application, used by pages
// created with the package-level NewPage and by resource models with no
// reachable application.
func Default() *Application {
	return defaultApp
}
