package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsChordWordAccepts(t *testing.T) {
	words := []string{
		"C", "C#", "Db", "Am", "Am7", "Cmaj7", "Cmin", "CM7", "Bdim", "Bdim7",
		"Caug", "C+", "Csus4", "Csus2", "Cadd9", "C7(b9)", "C7(#11)", "Cm7b5",
		"C-", "C/E", "D/F#", "Am7/G", "Bb/Ab", "C/E/G", "C13", "Em9",
	}
	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			assert.True(t, IsChordWord(w))
		})
	}
}

func TestIsChordWordRejects(t *testing.T) {
	words := []string{
		"", "Do", "Bad", "Dim", "Add", "Em.", "G,", "Cmajor", "C/", "C/x",
		"Hm", "am", "Amen", "Cx", "[C]", "Chorus", "Eb!", "Going",
	}
	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			assert.False(t, IsChordWord(w))
		})
	}
}

// The English article is indistinguishable from an A major chord. Lines
// without brackets will transpose it.
func TestIsChordWordKnownLimitationArticle(t *testing.T) {
	assert.True(t, IsChordWord("A"))
}
