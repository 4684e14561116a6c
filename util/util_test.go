package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	cases := []struct {
		n, m, want int
	}{
		{0, 12, 0},
		{13, 12, 1},
		{-1, 12, 11},
		{-13, 12, 11},
		{-120, 12, 0},
		{-1201, 12, 11},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d mod %d", c.n, c.m), func(t *testing.T) {
			assert.Equal(t, c.want, Mod(c.n, c.m))
		})
	}
}

func TestGetKeysSorted(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetKeysSorted(m))
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Clamp(-5, 0, 10))
	assert.Equal(10, Clamp(50, 0, 10))
	assert.Equal(7, Clamp(7, 0, 10))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Intro", "Verse 1", "Chorus"}, SplitList(" Intro, Verse 1 ,,Chorus "))
	assert.Nil(t, SplitList(""))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 6, Sum([]int{1, 2, 3}))
	assert.Equal(t, int64(0), Sum([]int64(nil)))
}
