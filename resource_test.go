package treecmp

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/pthm/treecmp/lib/interpolate"
)

type weatherStation struct {
	Name               string
	CurrentStatus      string
	CurrentTemperature float64
	Units              string
}

func newWeatherStation() *weatherStation {
	return &weatherStation{
		Name:               "Europe's main weather station",
		CurrentStatus:      "sunny",
		CurrentTemperature: 25.7,
		Units:              "°C",
	}
}

const weatherBundle = `
default:
  simple.text: Simple text
  wrappedOnAssignment.text: Non-wrapped text
  weather.sunny: It's sunny, wear sunscreen
  weather.raining: It's raining, take an umbrella
  weather.message: Weather station "${name}" reports that the temperature is ${currentTemperature} ${units}
  weather.detail: The report for ${time}, shows the temperature as ${station.currentTemperature} ${station.units} and the weather to be ${station.currentStatus}
  weather.mixed: "${station.name} says: ${currentStatus}"
  weather.full: "${date}: ${ws.currentStatus} at ${name}"
  "weather.25.7": Twenty-five dot seven
  "weather.25,7": "Fünfundzwanzig Komma sieben"
`

func newWeatherPage(t *testing.T) *Page {
	t.Helper()
	page := NewPage("page")
	page.SetBundle(MustBundle(weatherBundle))
	page.InternalInitialize()
	return page
}

func TestSimpleResource(t *testing.T) {
	page := newWeatherPage(t)
	model := NewResource("simple.text").Relative(page)

	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != "Simple text" {
		t.Errorf("Value() = %q, want %q", got, "Simple text")
	}

	obj, err := model.Object()
	if err != nil {
		t.Fatal(err)
	}
	if obj != "Simple text" {
		t.Errorf("Object() = %q, want %q", obj, "Simple text")
	}
}

func TestResourceWrappedOnAssignment(t *testing.T) {
	page := newWeatherPage(t)

	// An explicit relative component wins over the assignment target.
	anchored := NewLabel("anchored", NewResource("wrappedOnAssignment.text").Relative(page))
	page.Add(anchored)
	got, err := anchored.ModelObject()
	if err != nil {
		t.Fatal(err)
	}
	if got != "Non-wrapped text" {
		t.Errorf("anchored label = %q, want %q", got, "Non-wrapped text")
	}

	// Without one, resolution happens relative to the assigned label, whose
	// own bundle shadows the page's entry.
	wrapped := NewLabel("wrapped", NewResource("wrappedOnAssignment.text"))
	wrapped.SetBundle(MustBundle(`
default:
  wrappedOnAssignment.text: Wrapped text
`))
	page.Add(wrapped)
	got, err = wrapped.ModelObject()
	if err != nil {
		t.Fatal(err)
	}
	if got != "Wrapped text" {
		t.Errorf("wrapped label = %q, want %q", got, "Wrapped text")
	}

	if _, ok := wrapped.Model().(WrapModel); !ok {
		t.Error("expected the label to hold an assignment wrapper")
	}
}

func TestEmptyResourceKeyPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for an empty key")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "resource key") {
			t.Errorf("panic = %v, want it to mention the resource key", r)
		}
	}()
	NewResource("")
}

func TestResourceKeySubstitution(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("weather.${currentStatus}").Relative(page).Bind(Of(ws))

	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != "It's sunny, wear sunscreen" {
		t.Errorf("Value() = %q, want the sunny entry", got)
	}

	ws.CurrentStatus = "raining"
	got, err = model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != "It's raining, take an umbrella" {
		t.Errorf("Value() after mutation = %q, want the raining entry", got)
	}
}

func TestResourceKeyUsesLocaleNumberFormat(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("weather.${currentTemperature}").Relative(page).Bind(Of(ws))

	key, err := model.ResolvedKey()
	if err != nil {
		t.Fatal(err)
	}
	if key != "weather.25.7" {
		t.Errorf("english resolved key = %q, want %q", key, "weather.25.7")
	}
	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != "Twenty-five dot seven" {
		t.Errorf("english Value() = %q, want %q", got, "Twenty-five dot seven")
	}

	page.Session().SetLocale(language.German)
	key, err = model.ResolvedKey()
	if err != nil {
		t.Fatal(err)
	}
	if key != "weather.25,7" {
		t.Errorf("german resolved key = %q, want %q", key, "weather.25,7")
	}
	got, err = model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != "Fünfundzwanzig Komma sieben" {
		t.Errorf("german Value() = %q, want the german entry", got)
	}
}

func TestResourceSubstitutesFoundString(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("weather.message").Relative(page).Bind(Of(ws))

	want := `Weather station "Europe's main weather station" reports that the temperature is 25.7 ` + "°C"
	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}

	ws.CurrentTemperature = 11.5
	got, err = model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "11.5 °C") {
		t.Errorf("Value() after mutation = %q, want it to report 11.5", got)
	}
}

func TestResourceNamedModelSubstitution(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("weather.detail").Relative(page).
		BindNamed("time", Of(time.Date(2004, time.October, 15, 13, 21, 0, 0, time.UTC))).
		BindNamed("station", Of(ws))

	want := "The report for 10/15/04 13:21, shows the temperature as 25.7 °C and the weather to be sunny"
	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}

	ws.CurrentStatus = "raining"
	ws.CurrentTemperature = 11.568
	got, err = model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "11.568") || !strings.Contains(got, "raining") {
		t.Errorf("Value() after mutation = %q, want live values", got)
	}
}

func TestResourceUnprefixedPathFallsThroughToUnnamedModel(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("weather.mixed").Relative(page).
		BindNamed("station", Of(ws)).
		Bind(Of(ws))

	want := "Europe's main weather station says: sunny"
	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
}

func TestResourceThreeModelSubstitution(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("weather.full").Relative(page).
		BindNamed("date", Of(time.Date(2004, time.October, 15, 13, 21, 0, 0, time.UTC))).
		BindNamed("ws", Of(ws)).
		Bind(Of(ws))

	want := "10/15/04 13:21: sunny at Europe's main weather station"
	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
}

func TestResourceSetObjectIsReadOnly(t *testing.T) {
	page := newWeatherPage(t)
	model := NewResource("simple.text").Relative(page)
	if err := model.SetObject("nope"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("SetObject error = %v, want ErrReadOnly", err)
	}

	label := NewLabel("l", NewResource("simple.text"))
	page.Add(label)
	if err := label.Model().SetObject("nope"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("wrapper SetObject error = %v, want ErrReadOnly", err)
	}
}

func TestResourceDetachReleasesLoadableTarget(t *testing.T) {
	page := newWeatherPage(t)
	loads := 0
	loadable := NewLoadable(func() (*weatherStation, error) {
		loads++
		return newWeatherStation(), nil
	})
	model := NewResource("weather.${currentStatus}").Relative(page).Bind(loadable)

	if _, err := model.Object(); err != nil {
		t.Fatal(err)
	}
	if !loadable.Attached() {
		t.Fatal("expected the loadable target to be attached after a read")
	}
	if loads != 1 {
		t.Fatalf("load ran %d times, want 1", loads)
	}

	model.Detach()
	if loadable.Attached() {
		t.Error("expected Detach to release the loadable target")
	}
	if model.Attached() {
		t.Error("expected Detach to drop the cached value")
	}
}

// nilOnDetach makes detaching observable by clearing its value.
type nilOnDetach struct {
	v any
}

func (m *nilOnDetach) Object() (any, error) { return m.v, nil }
func (m *nilOnDetach) SetObject(v any) error {
	m.v = v
	return nil
}
func (m *nilOnDetach) Detach() { m.v = nil }

func TestResourceDetachReachesModelsThroughAssignmentWrapper(t *testing.T) {
	page := newWeatherPage(t)
	sub := &nilOnDetach{v: newWeatherStation()}
	label := NewLabel("l", NewResource("weather.${currentStatus}").Bind(sub))
	page.Add(label)

	if _, err := label.ModelObject(); err != nil {
		t.Fatal(err)
	}
	label.Detach()
	if sub.v != nil {
		t.Error("expected the substitution model to be detached through the wrapper")
	}
}

func TestResourceDetachesSubstitutionModelsEvenWhenNeverRead(t *testing.T) {
	sub := &nilOnDetach{v: newWeatherStation()}
	def := &nilOnDetach{v: "fallback"}
	model := NewResource("weather.${currentStatus}").Bind(sub).Default(def)

	if model.Attached() {
		t.Fatal("a fresh model must not be attached")
	}
	model.Detach()
	if sub.v != nil {
		t.Error("expected the substitution model to be detached")
	}
	if def.v != nil {
		t.Error("expected the default model to be detached")
	}
}

func TestResourceMissingKey(t *testing.T) {
	page := newWeatherPage(t)

	_, err := NewResource("no.such.key").Relative(page).Value()
	if !IsMissingResource(err) {
		t.Errorf("error = %v, want a missing-resource error", err)
	}

	got, err := NewResource("no.such.key").Relative(page).Default(Of("fallback")).Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != "fallback" {
		t.Errorf("Value() = %q, want the default", got)
	}
}

func TestResourceDefaultParticipatesInSubstitution(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("no.such.key").Relative(page).
		Bind(Of(ws)).
		Default(Of("status: ${currentStatus}"))

	got, err := model.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got != "status: sunny" {
		t.Errorf("Value() = %q, want the substituted default", got)
	}
}

func TestResourceUnresolvablePathFails(t *testing.T) {
	page := newWeatherPage(t)
	model := NewResource("weather.${noSuchProperty}").Relative(page).Bind(Of(newWeatherStation()))

	_, err := model.Value()
	if !errors.Is(err, interpolate.ErrUnresolved) {
		t.Errorf("error = %v, want an unresolved-path error", err)
	}
}

func TestResolvedKeyWithoutModelsIsRaw(t *testing.T) {
	model := NewResource("weather.${currentStatus}")
	key, err := model.ResolvedKey()
	if err != nil {
		t.Fatal(err)
	}
	if key != "weather.${currentStatus}" {
		t.Errorf("ResolvedKey() = %q, want the raw key", key)
	}
}

func TestResourceObjectCachesUntilDetach(t *testing.T) {
	page := newWeatherPage(t)
	ws := newWeatherStation()
	model := NewResource("weather.${currentStatus}").Relative(page).Bind(Of(ws))

	first, err := model.Object()
	if err != nil {
		t.Fatal(err)
	}
	ws.CurrentStatus = "raining"

	cached, err := model.Object()
	if err != nil {
		t.Fatal(err)
	}
	if cached != first {
		t.Errorf("Object() = %q, want the cached %q", cached, first)
	}

	model.Detach()
	fresh, err := model.Object()
	if err != nil {
		t.Fatal(err)
	}
	if fresh != "It's raining, take an umbrella" {
		t.Errorf("Object() after Detach = %q, want the recomputed value", fresh)
	}
}

func TestAssignmentWrappersCacheIndependently(t *testing.T) {
	page := newWeatherPage(t)
	model := NewResource("wrappedOnAssignment.text")

	first := NewLabel("first", model)
	second := NewLabel("second", model)
	second.SetBundle(MustBundle(`
default:
  wrappedOnAssignment.text: Second text
`))
	page.Add(first, second)

	got1, err := first.ModelObject()
	if err != nil {
		t.Fatal(err)
	}
	got2, err := second.ModelObject()
	if err != nil {
		t.Fatal(err)
	}
	if got1 != "Non-wrapped text" || got2 != "Second text" {
		t.Errorf("labels resolved to %q and %q, want per-label resolution", got1, got2)
	}
}
