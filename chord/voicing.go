package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/chordflow/pitch"
)

// Voicing is a best-effort close voicing of a chord symbol as MIDI note
// numbers, root in the given octave (octave 4 puts C at 60). A slash bass
// is placed below the root. Returns nil if token is not a chord.
func Voicing(token string, octave int) []uint8 {
	tok, ok := Parse(token)
	if !ok {
		return nil
	}
	root, _ := pitch.Index(tok.Root)
	base := 12*(octave+1) + int(root)

	var notes []uint8
	if tok.Bass != nil {
		bass, _ := pitch.Index(tok.Bass.Root)
		key := 12*octave + int(bass)
		if key >= base {
			key -= 12
		}
		notes = append(notes, clampKey(key))
	}
	for _, interval := range intervals(tok.Suffix) {
		notes = append(notes, clampKey(base+interval))
	}
	return notes
}

// intervals reads the quality off the front of the suffix and a handful of
// common extensions. Anything it does not understand is ignored.
func intervals(suffix string) []int {
	third, fifth := 4, 7
	dim := false
	switch {
	case strings.HasPrefix(suffix, "maj"), strings.HasPrefix(suffix, "M"):
	case strings.HasPrefix(suffix, "dim"):
		third, fifth, dim = 3, 6, true
	case strings.HasPrefix(suffix, "aug"), strings.HasPrefix(suffix, "+"):
		fifth = 8
	case strings.HasPrefix(suffix, "m"), strings.HasPrefix(suffix, "-"):
		third = 3
	}

	switch {
	case strings.Contains(suffix, "sus2"):
		third = 2
	case strings.Contains(suffix, "sus"):
		third = 5
	}
	switch {
	case strings.Contains(suffix, "b5"):
		fifth = 6
	case strings.Contains(suffix, "#5"):
		fifth = 8
	}

	res := []int{0, third, fifth}
	hasAdd := strings.Contains(suffix, "add")
	switch {
	case strings.Contains(suffix, "maj7"), strings.Contains(suffix, "maj9"), strings.HasPrefix(suffix, "M7"):
		res = append(res, 11)
	case dim && strings.Contains(suffix, "7"):
		res = append(res, 9)
	case strings.Contains(suffix, "7"):
		res = append(res, 10)
	case strings.Contains(suffix, "6"):
		res = append(res, 9)
	case !hasAdd && (strings.Contains(suffix, "9") || strings.Contains(suffix, "11") || strings.Contains(suffix, "13")):
		res = append(res, 10)
	}
	if strings.Contains(suffix, "9") {
		res = append(res, 14)
	}
	sort.Ints(res)
	return res
}

func clampKey(key int) uint8 {
	if key < 0 {
		return 0
	}
	if key > 127 {
		return 127
	}
	return uint8(key)
}

// CreateChordKey renders a voicing as a stable string such as "48-60-64-67".
func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}
