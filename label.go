package treecmp

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/pthm/treecmp/lib/interpolate"
)

// Label displays its model's value as text.
//
// Assigning an AssignableModel (such as a ResourceModel built without an
// explicit relative component) wraps it so resolution happens relative to
// this label:
//
//	label := treecmp.NewLabel("status", treecmp.NewResource("weather.sunny"))
type Label struct {
	*Base
	model Model
}

// NewLabel creates a label bound to a model. The model may be nil; the
// label then renders empty.
func NewLabel(id string, m Model) *Label {
	l := &Label{Base: NewBase(id)}
	l.Bind(l)
	l.SetModel(m)
	return l
}

// SetModel replaces the label's model, wrapping assignable models so they
// resolve relative to this label.
func (l *Label) SetModel(m Model) {
	if am, ok := m.(AssignableModel); ok {
		m = am.WrapOnAssignment(l)
	}
	l.model = m
}

// Model returns the label's model (the assignment wrapper, when one was
// produced).
func (l *Label) Model() Model {
	return l.model
}

// ModelObject returns the model's current value, or nil without a model.
func (l *Label) ModelObject() (any, error) {
	if l.model == nil {
		return nil, nil
	}
	return l.model.Object()
}

// Detach releases the model's cached state, then recurses into children.
func (l *Label) Detach() {
	if l.model != nil {
		l.model.Detach()
	}
	l.Base.Detach()
}

// Render emits the label as a span holding the model value, formatted for
// the label's effective locale and HTML-escaped.
func (l *Label) Render(ctx context.Context) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v, err := l.ModelObject()
		if err != nil {
			return err
		}
		text := interpolate.Format(v, message.NewPrinter(LocaleOf(l)))
		if _, err := io.WriteString(w, `<span id="`+html.EscapeString(l.Path())+`">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, html.EscapeString(text)); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</span>`)
		return err
	})
}
