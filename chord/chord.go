// Package chord transposes single chord symbols such as "D#m7" or "G/B".
//
// Only the root (and any slash bass) is interpreted. Everything after the
// root is treated as an opaque suffix and copied through untouched, so
// "Dbmaj7(#11)" transposes to "Emaj7(#11)" without the suffix ever being
// validated.
package chord

import (
	"strings"

	"github.com/jsphweid/chordflow/model"
	"github.com/jsphweid/chordflow/pitch"
)

// Transpose shifts the root of token, and of every slash-separated part,
// by semitones. Tokens whose root cannot be resolved come back unchanged.
// A zero offset returns token as-is, so flat spellings survive.
func Transpose(token string, semitones int) string {
	if semitones == 0 || token == "" {
		return token
	}
	if !strings.Contains(token, "/") {
		return transposeRoot(token, semitones)
	}

	parts := strings.Split(token, "/")
	for i, part := range parts {
		parts[i] = transposeRoot(part, semitones)
	}
	return strings.Join(parts, "/")
}

func transposeRoot(part string, semitones int) string {
	root, suffix, ok := splitRoot(part)
	if !ok {
		return part
	}
	c, ok := pitch.Index(root)
	if !ok {
		return part
	}
	return c.Shift(semitones).Name() + suffix
}

// splitRoot cuts a leading A-G letter plus optional accidental off s.
func splitRoot(s string) (root string, suffix string, ok bool) {
	if s == "" || s[0] < 'A' || s[0] > 'G' {
		return "", s, false
	}
	n := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		n = 2
	}
	return s[:n], s[n:], true
}

// Parse decomposes token into root, suffix and slash bass. A slash part
// that is not itself a chord (e.g. the "9" in "C6/9") stays in the suffix.
func Parse(token string) (model.ChordToken, bool) {
	head, tail, hasSlash := strings.Cut(token, "/")
	root, suffix, ok := splitRoot(head)
	if !ok {
		return model.ChordToken{}, false
	}
	if _, ok := pitch.Index(root); !ok {
		return model.ChordToken{}, false
	}

	res := model.ChordToken{Root: root, Suffix: suffix}
	if hasSlash {
		if bass, ok := Parse(tail); ok {
			res.Bass = &bass
		} else {
			res.Suffix += "/" + tail
		}
	}
	return res, true
}

// RootClass returns the pitch class of the token's root.
func RootClass(token string) (pitch.Class, bool) {
	root, _, ok := splitRoot(token)
	if !ok {
		return 0, false
	}
	return pitch.Index(root)
}
