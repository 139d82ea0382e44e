// Package graph provides an O(1) adjacency index over scanned elements.
//
// The index is read-only once built. Edges are keyed by stable element
// names, never by pointers, so cyclic graphs (mutual recursion is a
// legitimate scan result) carry no ownership hazards: traversals guard
// against cycles with visited sets, not with graph structure.
package graph

import (
	"planguard/internal/scan"
)

// Index holds forward (name -> dependencies) and reverse (name -> calledBy)
// adjacency for a flat element list.
type Index struct {
	elements map[string]scan.Element
	forward  map[string][]string
	reverse  map[string][]string
}

// NewIndex builds an index from a flat element list. Missing dependency and
// calledBy fields default to empty lists so partial scans degrade gracefully.
// Duplicate names keep the first occurrence.
func NewIndex(elements []scan.Element) *Index {
	idx := &Index{
		elements: make(map[string]scan.Element, len(elements)),
		forward:  make(map[string][]string, len(elements)),
		reverse:  make(map[string][]string, len(elements)),
	}

	for _, el := range elements {
		if el.Name == "" {
			continue
		}
		if _, seen := idx.elements[el.Name]; seen {
			continue
		}
		idx.elements[el.Name] = el
		idx.forward[el.Name] = append([]string(nil), el.Dependencies...)
		idx.reverse[el.Name] = append([]string(nil), el.CalledBy...)
	}

	return idx
}

// Lookup returns the element by name. Absence is "no data", not an error.
func (idx *Index) Lookup(name string) (scan.Element, bool) {
	el, ok := idx.elements[name]
	return el, ok
}

// Dependencies returns the names the given element statically references.
// Unknown names yield an empty list.
func (idx *Index) Dependencies(name string) []string {
	return idx.forward[name]
}

// CalledBy returns the names referencing the given element.
// Unknown names yield an empty list.
func (idx *Index) CalledBy(name string) []string {
	return idx.reverse[name]
}

// Len returns the number of indexed elements.
func (idx *Index) Len() int {
	return len(idx.elements)
}

// Names returns all indexed element names in unspecified order.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.elements))
	for name := range idx.elements {
		names = append(names, name)
	}
	return names
}
