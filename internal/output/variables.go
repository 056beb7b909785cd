package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// WriteVariable prints the value of the named variable on its own line.
// Names are case-sensitive.
func WriteVariable(w io.Writer, variables map[string]string, name string) error {
	val, ok := variables[name]
	if !ok {
		return fmt.Errorf("unknown variable %q (known: %s)", name,
			strings.Join(slices.Sorted(maps.Keys(variables)), ", "))
	}
	if _, err := fmt.Fprintln(w, val); err != nil {
		return fmt.Errorf("writing variable %s: %w", name, err)
	}
	return nil
}

// WriteAll prints every variable as NAME=value, ordered by name.
func WriteAll(w io.Writer, variables map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(variables)) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, variables[name]); err != nil {
			return fmt.Errorf("writing variables: %w", err)
		}
	}
	return nil
}
