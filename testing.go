package treecmp

import (
	"bytes"
	"context"
)

// Recorder is a component that records every lifecycle hook fired on it,
// in order. Use it to assert on notification sequences without writing a
// bespoke probe type:
//
//	probe := treecmp.NewRecorder("probe")
//	page.Add(probe)
//	if probe.Count(treecmp.HookAddToPage) != 1 {
//	    t.Fatal("expected exactly one add notification")
//	}
type Recorder struct {
	*Base
	Events []Hook
}

// NewRecorder creates a recording probe component.
func NewRecorder(id string) *Recorder {
	r := &Recorder{Base: NewBase(id)}
	r.Bind(r)
	return r
}

// OnInitialize records the hook and chains to Base.
func (r *Recorder) OnInitialize() {
	r.Base.OnInitialize()
	r.Events = append(r.Events, HookInitialize)
}

// OnAddToPage records the hook and chains to Base.
func (r *Recorder) OnAddToPage() {
	r.Base.OnAddToPage()
	r.Events = append(r.Events, HookAddToPage)
}

// OnReAdd records the hook and chains to Base.
func (r *Recorder) OnReAdd() {
	r.Base.OnReAdd()
	r.Events = append(r.Events, HookReAdd)
}

// OnRemove records the hook and chains to Base.
func (r *Recorder) OnRemove() {
	r.Base.OnRemove()
	r.Events = append(r.Events, HookRemove)
}

// Count returns how many times a hook fired on this recorder.
func (r *Recorder) Count(h Hook) int {
	n := 0
	for _, e := range r.Events {
		if e == h {
			n++
		}
	}
	return n
}

// Reset clears the recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}

// MustBundle parses a YAML bundle and panics on error. Intended for test
// fixtures and example setup where the source is a literal:
//
//	bundle := treecmp.MustBundle(`
//	default:
//	  simple.text: Simple text
//	`)
func MustBundle(src string) *Bundle {
	b, err := ParseBundle([]byte(src))
	if err != nil {
		panic(err)
	}
	return b
}

// RenderHTML renders a component tree to a string. Useful in tests that
// assert on markup without HTTP mechanics.
func RenderHTML(c Component) (string, error) {
	var buf bytes.Buffer
	if err := HTML(c).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
