package model

import (
	"fmt"
	"strings"
)

// NoMatchError is returned when no element label contains the searched text.
type NoMatchError struct {
	Label string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no element found with label containing %q; call describe_screen to see available labels", e.Label)
}

// FindByLabel returns every element whose label contains label
// (case-insensitive), in pre-order traversal order. Nested input is
// flattened first.
func FindByLabel(elements []Element, label string) []Element {
	needle := strings.ToLower(label)
	var matches []Element
	for _, el := range Flatten(elements) {
		if el.Label == "" {
			continue
		}
		if strings.Contains(strings.ToLower(el.Label), needle) {
			matches = append(matches, el)
		}
	}
	return matches
}

// FirstByLabel returns the first element in traversal order whose label
// contains label, and the total number of matches.
func FirstByLabel(elements []Element, label string) (Element, int, error) {
	matches := FindByLabel(elements, label)
	if len(matches) == 0 {
		return Element{}, 0, &NoMatchError{Label: label}
	}
	return matches[0], len(matches), nil
}
