package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	examples := []struct {
		name     string
		a        []string
		b        []string
		expected []string
	}{
		{name: "removed element", a: []string{"a", "b", "c"}, b: []string{"a", "c"}, expected: []string{"b"}},
		{name: "superset on the right", a: []string{"a", "c"}, b: []string{"a", "b", "c"}, expected: []string{}},
		{name: "appended elements keep order", a: []string{"1", "2", "5", "3"}, b: []string{"1", "2"}, expected: []string{"5", "3"}},
		{name: "duplicates are kept", a: []string{"x", "y", "x"}, b: []string{"y"}, expected: []string{"x", "x"}},
		{name: "empty left", a: nil, b: []string{"a"}, expected: []string{}},
		{name: "empty right", a: []string{"a"}, b: nil, expected: []string{"a"}},
		{name: "both empty", a: []string{}, b: []string{}, expected: []string{}},
	}

	for _, ex := range examples {
		t.Run(ex.name, func(t *testing.T) {
			assert.Equal(t, ex.expected, Diff(ex.a, ex.b))
		})
	}
}

func TestDiff_Directionality(t *testing.T) {
	prev := []string{"1", "2", "3"}
	next := []string{"2", "3", "4"}

	assert.Equal(t, []string{"4"}, Diff(next, prev), "appended")
	assert.Equal(t, []string{"1"}, Diff(prev, next), "removed")
}
