package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexResolvesEverySpelling(t *testing.T) {
	cases := map[string]Class{
		"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3, "E": 4, "Fb": 4,
		"E#": 5, "F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8, "Ab": 8, "A": 9,
		"A#": 10, "Bb": 10, "B": 11, "Cb": 11, "B#": 0,
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := Index(name)
			assert.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestIndexRejectsUnknownSpellings(t *testing.T) {
	for _, name := range []string{"", "H", "c", "C##", "Dbb", "Cm", "#", "b", "Do"} {
		t.Run(name, func(t *testing.T) {
			_, ok := Index(name)
			assert.False(t, ok)
		})
	}
}

func TestNameIsAlwaysSharp(t *testing.T) {
	assert := assert.New(t)
	for _, flat := range []string{"Db", "Eb", "Gb", "Ab", "Bb"} {
		c, _ := Index(flat)
		assert.Contains(c.Name(), "#")
	}
	want := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	for i, name := range want {
		assert.Equal(name, Class(i).Name())
	}
}

func TestShift(t *testing.T) {
	cases := []struct {
		name      string
		from      Class
		semitones int
		want      Class
	}{
		{"up one", 0, 1, 1},
		{"down one wraps", 0, -1, 11},
		{"down thirteen", 0, -13, 11},
		{"up twenty five", 0, 25, 1},
		{"large negative", 0, -1201, 11},
		{"min int", 0, math.MinInt, Class(((math.MinInt % 12) + 12) % 12)},
		{"max int", 11, math.MaxInt, Class((11 + math.MaxInt%12) % 12)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.from.Shift(c.semitones))
		})
	}
}

func TestShiftRoundTrip(t *testing.T) {
	for c := Class(0); c < NumClasses; c++ {
		for _, n := range []int{-25, -12, -7, -1, 0, 1, 5, 11, 12, 99} {
			assert.Equal(t, c, c.Shift(n).Shift(-n))
		}
	}
}
