package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Set is an unordered collection without duplicates.
// It serialises as a JSON array sorted by the elements' string form so that
// persisted records are stable across writes.
type Set[K comparable] map[K]struct{}

// NewSet builds a set from the given items
func NewSet[K comparable](items ...K) Set[K] {
	s := make(Set[K], len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports membership
func (s Set[K]) Has(item K) bool {
	_, ok := s[item]
	return ok
}

// Add inserts item and reports whether it was not already present
func (s Set[K]) Add(item K) bool {
	if _, ok := s[item]; ok {
		return false
	}
	s[item] = struct{}{}
	return true
}

// Len returns the number of elements
func (s Set[K]) Len() int {
	return len(s)
}

// Clone returns an independent copy; a nil set clones to an empty one
func (s Set[K]) Clone() Set[K] {
	out := make(Set[K], len(s))
	for item := range s {
		out[item] = struct{}{}
	}
	return out
}

// Items returns the elements sorted by their string form
func (s Set[K]) Items() []K {
	items := make([]K, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return fmt.Sprint(items[i]) < fmt.Sprint(items[j])
	})
	return items
}

// MarshalJSON implements json.Marshaler
func (s Set[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Set[K]) UnmarshalJSON(data []byte) error {
	var items []K
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}
