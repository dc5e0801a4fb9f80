package mastery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_InitAndOrder(t *testing.T) {
	m := NewMap([]string{"Fractions", "Decimals", "Ratios"}, InitialMastery)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"Fractions", "Decimals", "Ratios"}, m.Concepts())
	for _, e := range m.Entries() {
		assert.Equal(t, InitialMastery, e.Mastery)
	}
}

func TestMap_SetClamps(t *testing.T) {
	m := NewMap([]string{"A"}, 0.2)
	m.Set("A", 1.4)
	v, _ := m.Get("A")
	assert.Equal(t, 1.0, v)

	m.Set("A", -3)
	v, _ = m.Get("A")
	assert.Equal(t, 0.0, v)

	m.Set("B", 0.5)
	assert.Equal(t, []string{"A", "B"}, m.Concepts())
}

func TestMap_AscendingStableTies(t *testing.T) {
	m := NewMap([]string{"A", "B", "C", "D"}, 0.2)
	m.Set("A", 0.5)
	m.Set("C", 0.1)

	var order []string
	for _, e := range m.Ascending() {
		order = append(order, e.Concept)
	}
	assert.Equal(t, []string{"C", "B", "D", "A"}, order)

	order = order[:0]
	for _, e := range m.Descending() {
		order = append(order, e.Concept)
	}
	assert.Equal(t, []string{"A", "B", "D", "C"}, order)
}
