package mastery

import (
	"sort"
)

// Entry is one concept's mastery.
type Entry struct {
	Concept string
	Mastery float64
}

// Map holds the mastery probability of each concept. Concepts keep the
// order they were added in, which is the tie-break order wherever the map
// is sorted.
type Map struct {
	concepts []string
	values   map[string]float64
}

// NewMap creates a map with every concept set to initial.
func NewMap(concepts []string, initial float64) *Map {
	m := &Map{values: make(map[string]float64, len(concepts))}
	for _, c := range concepts {
		m.Set(c, initial)
	}
	return m
}

// Get returns a concept's mastery.
func (m *Map) Get(concept string) (float64, bool) {
	v, ok := m.values[concept]
	return v, ok
}

// Set stores a concept's mastery, clamped to [0, 1]. Unknown concepts are
// appended to the concept order.
func (m *Map) Set(concept string, v float64) {
	if _, ok := m.values[concept]; !ok {
		m.concepts = append(m.concepts, concept)
	}
	m.values[concept] = Clamp(v)
}

// Len returns the number of concepts.
func (m *Map) Len() int { return len(m.concepts) }

// Concepts returns the concepts in insertion order.
func (m *Map) Concepts() []string {
	out := make([]string, len(m.concepts))
	copy(out, m.concepts)
	return out
}

// Entries returns all entries in insertion order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, 0, len(m.concepts))
	for _, c := range m.concepts {
		out = append(out, Entry{Concept: c, Mastery: m.values[c]})
	}
	return out
}

// Ascending returns entries from weakest to strongest. Equal values keep
// insertion order.
func (m *Map) Ascending() []Entry {
	entries := m.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Mastery < entries[j].Mastery
	})
	return entries
}

// Descending returns entries from strongest to weakest. Equal values keep
// insertion order.
func (m *Map) Descending() []Entry {
	entries := m.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Mastery > entries[j].Mastery
	})
	return entries
}
