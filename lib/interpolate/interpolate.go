// Package interpolate evaluates property-path expressions against arbitrary
// targets and substitutes ${...} placeholders in strings.
//
// A property path is a dot-separated chain of lookups. Each segment is
// resolved against the current value using, in order: the Getter interface,
// a zero-argument accessor method (status, Status or GetStatus), a map with
// string keys, or a struct field (matched case-insensitively).
//
// Values are rendered with a locale-aware printer: numbers pick up the
// locale's decimal separator and grouping, strings pass through unchanged.
package interpolate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrUnresolved is returned when a property path cannot be evaluated
// against the target. The wrapping error names the offending path.
var ErrUnresolved = errors.New("interpolate: unresolved property path")

// TimeLayout is the layout used to render time.Time values.
const TimeLayout = "01/02/06 15:04"

// Getter dispatches a path segment by name. Multi-model substitution views
// implement this to route "name.path" expressions to the model registered
// under "name". A Getter may expose a fallback target under the empty name;
// paths whose first segment matches no entry are retried against it.
type Getter interface {
	Get(name string) (any, bool)
}

// Placeholders returns the property paths of all ${...} placeholders in s.
//
// An unterminated "${" or an empty "${}" is an error. A string without
// placeholders returns a nil slice.
func Placeholders(s string) ([]string, error) {
	var paths []string
	for {
		i := strings.Index(s, "${")
		if i < 0 {
			return paths, nil
		}
		rest := s[i+2:]
		j := strings.IndexByte(rest, '}')
		if j < 0 {
			return nil, fmt.Errorf("interpolate: unterminated placeholder in %q", s)
		}
		if rest[:j] == "" {
			return nil, fmt.Errorf("interpolate: empty placeholder in %q", s)
		}
		paths = append(paths, rest[:j])
		s = rest[j+1:]
	}
}

// Interpolate replaces every ${path} placeholder in s with the value of
// path evaluated against target, rendered through p.
//
//	Interpolate("weather.${currentStatus}", station, printer)
//
// Returns an error for malformed placeholders and for paths that cannot be
// resolved; substitution failures are never silently skipped.
func Interpolate(s string, target any, p *message.Printer) (string, error) {
	var b strings.Builder
	for {
		i := strings.Index(s, "${")
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		rest := s[i+2:]
		j := strings.IndexByte(rest, '}')
		if j < 0 {
			return "", fmt.Errorf("interpolate: unterminated placeholder in %q", s)
		}
		path := rest[:j]
		if path == "" {
			return "", fmt.Errorf("interpolate: empty placeholder in %q", s)
		}
		v, err := Resolve(target, path)
		if err != nil {
			return "", err
		}
		b.WriteString(Format(v, p))
		s = rest[j+1:]
	}
}

// Resolve evaluates a dot-separated property path against target and
// returns the resulting value.
//
// When target is a Getter and the first segment matches none of its
// entries, the whole path is retried against the Getter's "" entry if one
// exists. This lets unprefixed expressions fall through to a default model
// while named expressions dispatch explicitly.
func Resolve(target any, path string) (any, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUnresolved)
	}
	cur := target
	for i, seg := range strings.Split(path, ".") {
		next, ok := step(cur, seg)
		if !ok {
			if i == 0 {
				if g, isGetter := cur.(Getter); isGetter {
					if fallback, has := g.Get(""); has {
						return Resolve(fallback, path)
					}
				}
			}
			return nil, fmt.Errorf("%w: %q (segment %q)", ErrUnresolved, path, seg)
		}
		cur = next
	}
	return cur, nil
}

// Format renders a resolved value as a string using the given printer.
// Numbers are formatted per the printer's locale; a nil printer falls back
// to plain formatting.
func Format(v any, p *message.Printer) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(TimeLayout)
	case fmt.Stringer:
		return t.String()
	}
	if p != nil && isNumeric(v) {
		return p.Sprint(number.Decimal(v))
	}
	return fmt.Sprint(v)
}

func isNumeric(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// step resolves a single path segment against a value.
func step(target any, seg string) (any, bool) {
	if target == nil {
		return nil, false
	}
	if g, ok := target.(Getter); ok {
		return g.Get(seg)
	}

	rv := reflect.ValueOf(target)
	if v, ok := callAccessor(rv, seg); ok {
		return v, true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
		if v, ok := callAccessor(rv, seg); ok {
			return v, true
		}
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(seg))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		fv := rv.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, seg)
		})
		if fv.IsValid() && fv.CanInterface() {
			return fv.Interface(), true
		}
	}
	return nil, false
}

// callAccessor looks for a zero-argument accessor method for seg. Both the
// exported form of the segment and a Get-prefixed variant are accepted. A
// second error return value is honored: a non-nil error fails the lookup.
func callAccessor(rv reflect.Value, seg string) (any, bool) {
	if !rv.IsValid() {
		return nil, false
	}
	for _, name := range []string{exported(seg), "Get" + exported(seg)} {
		m := rv.MethodByName(name)
		if !m.IsValid() {
			continue
		}
		mt := m.Type()
		if mt.NumIn() != 0 || mt.NumOut() < 1 || mt.NumOut() > 2 {
			continue
		}
		if mt.NumOut() == 2 && mt.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
			continue
		}
		out := m.Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, false
		}
		return out[0].Interface(), true
	}
	return nil, false
}

func exported(seg string) string {
	if seg == "" {
		return seg
	}
	r := []rune(seg)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
