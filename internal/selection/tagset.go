// Package selection provides the two toggle-membership sets of a browsing
// session: the pill (category/tag) filter and the bounded comparison.
package selection

import "sort"

// TagSet is an unbounded set of selected pill keys.
// Insertion order is irrelevant; Keys reports them sorted.
//
// The zero value and a nil *TagSet are both empty sets.
type TagSet struct {
	keys map[string]struct{}
}

// NewTagSet creates a set holding keys.
func NewTagSet(keys ...string) *TagSet {
	s := &TagSet{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
	return s
}

// Toggle removes key if present, otherwise inserts it.
// Returns true when key is selected after the call.
func (s *TagSet) Toggle(key string) bool {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Has reports whether key is selected.
func (s *TagSet) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of selected keys.
func (s *TagSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the selected keys in sorted order.
func (s *TagSet) Keys() []string {
	if s == nil {
		return []string{}
	}
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear deselects every key.
func (s *TagSet) Clear() {
	s.keys = make(map[string]struct{})
}
