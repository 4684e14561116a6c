package chord

// markers is the closed vocabulary allowed after a root. Multi-letter
// markers come first so "maj" is not consumed as "m" + "aj".
var markers = []string{"maj", "min", "dim", "aug", "sus", "add", "m", "M", "(", ")", "+", "-", "#", "b"}

// IsChordWord reports whether the whole of word reads as a chord symbol:
//
//	word   = root { marker | digit | "/" root }
//	root   = "A".."G" [ "#" | "b" ]
//
// A slash must be followed by another root, so "C/E" and "Am7/G" pass while
// "C/" does not. Partial matches are rejected: "Do", "Bad" and "G," are
// lyrics. A lone "A" is accepted even though it is usually the article.
func IsChordWord(word string) bool {
	i, ok := matchRoot(word, 0)
	if !ok {
		return false
	}

	for i < len(word) {
		c := word[i]
		switch {
		case c >= '0' && c <= '9':
			i++
		case c == '/':
			if i, ok = matchRoot(word, i+1); !ok {
				return false
			}
		default:
			n := matchMarker(word[i:])
			if n == 0 {
				return false
			}
			i += n
		}
	}
	return true
}

func matchRoot(word string, at int) (int, bool) {
	if at >= len(word) || word[at] < 'A' || word[at] > 'G' {
		return at, false
	}
	at++
	if at < len(word) && (word[at] == '#' || word[at] == 'b') {
		at++
	}
	return at, true
}

func matchMarker(s string) int {
	for _, m := range markers {
		if len(s) >= len(m) && s[:len(m)] == m {
			return len(m)
		}
	}
	return 0
}
