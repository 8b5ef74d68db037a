package main

import (
	_ "embed"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/text/language"

	"github.com/pthm/treecmp"
	"github.com/pthm/treecmp/lib/codec"
)

//go:embed bundles/app.yaml
var bundleSrc []byte

func main() {
	bundle, err := treecmp.ParseBundle(bundleSrc)
	if err != nil {
		log.Fatal(err)
	}
	treecmp.Default().Localizer().AddBundle(bundle)

	// In production, use a real secret.
	cdc, err := codec.New([]byte("example-key-must-be-32-bytes!!"))
	if err != nil {
		log.Fatal(err)
	}

	station := NewStation()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page := buildPage(station, localeFrom(r))
		if err := treecmp.Render(w, r, page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	// Renders a single component named by a refresh token, the way a
	// polling fragment would.
	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		page := buildPage(station, localeFrom(r))
		c, err := treecmp.ResolveRefresh(cdc, page, r.URL.Query().Get("token"), false)
		if err != nil {
			status := http.StatusBadRequest
			if treecmp.IsTokenError(err) {
				status = http.StatusForbidden
			}
			http.Error(w, err.Error(), status)
			return
		}
		if err := treecmp.Render(w, r, c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":8080"
	fmt.Printf("Starting server at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

// localeFrom reads the locale from the query, defaulting to the
// application's locale. Try /?locale=de for the German strings.
func localeFrom(r *http.Request) language.Tag {
	if raw := r.URL.Query().Get("locale"); raw != "" {
		if tag, err := language.Parse(raw); err == nil {
			return tag
		}
	}
	return treecmp.Default().DefaultLocale()
}

func buildPage(station *Station, locale language.Tag) *treecmp.Page {
	report := station.Report()
	ws := treecmp.Of(&report)

	page := treecmp.NewPage("weather")
	page.Session().SetLocale(locale)

	page.Add(
		treecmp.NewLabel("title", treecmp.NewResource("weather.title")),
		treecmp.NewLabel("status", treecmp.NewResource("weather.${currentStatus}").Bind(ws)),
		treecmp.NewLabel("message", treecmp.NewResource("weather.message").Bind(ws)),
	)
	page.InternalInitialize()
	return page
}
