package treecmp

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// defaultSection holds entries used when no locale section matches.
const defaultSection = "default"

// Bundle is a set of localizable strings, sectioned by locale:
//
//	default:
//	  simple.text: Simple text
//	  weather.sunny: It's sunny, wear sunscreen
//	de:
//	  simple.text: Einfacher Text
//
// Section names are BCP-47 tags (or "default"); lookups walk the requested
// tag towards its parents and fall back to the default section, so a "de-AT"
// request is satisfied by a "de" section.
type Bundle struct {
	sections map[string]map[string]string
}

// ParseBundle parses YAML bundle data. Section names must be "default" or
// well-formed locale tags.
func ParseBundle(data []byte) (*Bundle, error) {
	sections := make(map[string]map[string]string)
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("treecmp: parse bundle: %w", err)
	}
	for name := range sections {
		if name == defaultSection {
			continue
		}
		if _, err := language.Parse(name); err != nil {
			return nil, fmt.Errorf("treecmp: bundle section %q is not a locale: %w", name, err)
		}
	}
	return &Bundle{sections: sections}, nil
}

// LoadBundle reads and parses a bundle file.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBundle(data)
}

// Lookup finds the entry for key under the given locale, walking the tag's
// parents before trying the default section.
func (b *Bundle) Lookup(key string, locale language.Tag) (string, bool) {
	for tag := locale; tag != language.Und; tag = tag.Parent() {
		if section, ok := b.sections[tag.String()]; ok {
			if v, ok := section[key]; ok {
				return v, true
			}
		}
	}
	if section, ok := b.sections[defaultSection]; ok {
		if v, ok := section[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Keys returns every key defined in the bundle, across all sections.
// Used by the lint tool to validate placeholder syntax.
func (b *Bundle) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, section := range b.sections {
		for k := range section {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Entries returns all section/key/value triples. Iteration order is not
// deterministic.
func (b *Bundle) Entries() map[string]map[string]string {
	return b.sections
}
