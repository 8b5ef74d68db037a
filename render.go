package treecmp

import (
	"context"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// Renderer is implemented by components that produce templ output. Base
// provides a default that wraps the children in a div, so every component
// satisfies the interface; Label shadows it to emit its model value.
//
// Render should be pure: it reads component and model state and produces
// HTML without side effects.
type Renderer interface {
	Render(ctx context.Context) templ.Component
}

// Render returns the default markup for a container-like component: a div
// carrying the component path as its id, wrapping the children rendered
// depth-first in insertion order.
func (b *Base) Render(ctx context.Context) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+html.EscapeString(b.Path())+`">`); err != nil {
			return err
		}
		for _, child := range b.children {
			if err := child.(Renderer).Render(ctx).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// HTML renders a component tree into a templ component, dispatching
// through each node's outermost Render.
func HTML(c Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return c.base().outer().(Renderer).Render(ctx).Render(ctx, w)
	})
}

// Render writes a component tree to the HTTP response.
//
// Sets Content-Type to text/html and renders using the request's context:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    page := buildPage()
//	    page.InternalInitialize()
//	    treecmp.Render(w, r, page)
//	}
func Render(w http.ResponseWriter, r *http.Request, c Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return HTML(c).Render(r.Context(), w)
}
