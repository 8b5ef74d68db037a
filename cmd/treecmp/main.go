package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pthm/treecmp"
	"github.com/pthm/treecmp/lib/interpolate"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "lint":
		if err := runLint(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "keys":
		if err := runKeys(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("treecmp version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`treecmp - component tree and resource bundle tools

Usage:
  treecmp <command> [arguments]

Commands:
  lint <bundles...>     Validate bundle files and their ${...} placeholders
  keys <bundles...>     List the resource keys defined in bundle files
  version               Print version
  help                  Show this help

Examples:
  treecmp lint bundles/app.yaml            Check one bundle
  treecmp lint bundles/*.yaml              Check every bundle
  treecmp keys bundles/app.yaml            List defined keys`)
}

// runLint parses each bundle and checks every entry's placeholder syntax.
// Unterminated and empty placeholders fail at render time, so they are
// reported here instead.
func runLint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("lint: no bundle files given")
	}

	problems := 0
	for _, path := range args {
		bundle, err := treecmp.LoadBundle(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			problems++
			continue
		}
		for section, entries := range bundle.Entries() {
			for key, value := range entries {
				if _, err := interpolate.Placeholders(value); err != nil {
					fmt.Fprintf(os.Stderr, "%s: [%s] %s: %v\n", path, section, key, err)
					problems++
				}
				if _, err := interpolate.Placeholders(key); err != nil {
					fmt.Fprintf(os.Stderr, "%s: [%s] key %q: %v\n", path, section, key, err)
					problems++
				}
			}
		}
	}

	if problems > 0 {
		return fmt.Errorf("lint: %d problem(s) found", problems)
	}
	fmt.Printf("lint: %d bundle(s) ok\n", len(args))
	return nil
}

func runKeys(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("keys: no bundle files given")
	}

	seen := make(map[string]bool)
	for _, path := range args {
		bundle, err := treecmp.LoadBundle(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, key := range bundle.Keys() {
			seen[key] = true
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}
