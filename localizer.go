package treecmp

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pthm/treecmp/lib/interpolate"
)

// Localizer finds localized strings for resource keys. It owns the bundle
// search order: the relative component's own bundle, then its ancestors'
// bundles walking up the tree, then the localizer's global bundles in
// registration order.
//
// A found string goes through a second pass of ${...} substitution against
// the lookup's target before it is returned, so bundle entries can embed
// property expressions.
type Localizer struct {
	mu      sync.RWMutex
	bundles []*Bundle
}

// NewLocalizer creates a localizer with the given global bundles.
func NewLocalizer(bundles ...*Bundle) *Localizer {
	return &Localizer{bundles: bundles}
}

// AddBundle appends a global bundle. Bundles registered earlier win.
func (l *Localizer) AddBundle(b *Bundle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bundles = append(l.bundles, b)
}

// Lookup starts a fluent string lookup:
//
//	text, err := localizer.Lookup("weather.message").
//	    Relative(label).
//	    Substitute(station).
//	    String()
func (l *Localizer) Lookup(key string) *Lookup {
	return &Lookup{localizer: l, key: key}
}

// Lookup accumulates the parameters of a single localized string lookup.
type Lookup struct {
	localizer  *Localizer
	key        string
	component  Component
	target     any
	def        *string
	locale     language.Tag
	haveLocale bool
}

// Relative scopes the bundle search to a component and its ancestors.
func (q *Lookup) Relative(c Component) *Lookup {
	q.component = c
	return q
}

// Substitute sets the target for ${...} substitution inside the found
// string (and inside the default, when it applies).
func (q *Lookup) Substitute(target any) *Lookup {
	q.target = target
	return q
}

// DefaultTo supplies a value used when no bundle entry matches. Without a
// default a missing key is an error.
func (q *Lookup) DefaultTo(s string) *Lookup {
	q.def = &s
	return q
}

// Locale overrides the locale; otherwise the relative component's
// effective locale (or the default application's) applies.
func (q *Lookup) Locale(tag language.Tag) *Lookup {
	q.locale = tag
	q.haveLocale = true
	return q
}

// String runs the lookup. It fails with ErrMissingResource when the key
// has no bundle entry and no default, and propagates substitution errors.
func (q *Lookup) String() (string, error) {
	locale := q.locale
	if !q.haveLocale {
		if q.component != nil {
			locale = LocaleOf(q.component)
		} else {
			locale = Default().DefaultLocale()
		}
	}

	raw, found := q.find(locale)
	if !found {
		if q.def == nil {
			return "", fmt.Errorf("%w: key %q", ErrMissingResource, q.key)
		}
		raw = *q.def
	}

	if q.target == nil {
		return raw, nil
	}
	return interpolate.Interpolate(raw, q.target, message.NewPrinter(locale))
}

func (q *Lookup) find(locale language.Tag) (string, bool) {
	if q.component != nil {
		for cur := q.component.base(); cur != nil; cur = cur.parent {
			if cur.bundle == nil {
				continue
			}
			if v, ok := cur.bundle.Lookup(q.key, locale); ok {
				return v, true
			}
		}
	}

	q.localizer.mu.RLock()
	defer q.localizer.mu.RUnlock()
	for _, b := range q.localizer.bundles {
		if v, ok := b.Lookup(q.key, locale); ok {
			return v, true
		}
	}
	return "", false
}
