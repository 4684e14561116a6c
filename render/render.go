// Package render turns chord chart text into typed chord/lyric spans,
// transposing every chord it finds along the way.
//
// Each line is scanned in one of two modes. If the line contains a '['
// anywhere, only bracketed annotations like "[G]" are chords and the rest
// of the line is lyric text, even words that would otherwise look like
// chords. Lines without brackets are split into words and whitespace, and
// each word that passes chord.IsChordWord becomes a chord span.
//
// All functions are pure and safe for concurrent use.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsphweid/chordflow/chord"
	"github.com/jsphweid/chordflow/model"
)

// segment is a scanned piece of a line. bracketed chords keep track of
// their delimiters so plain-text output can put them back.
type segment struct {
	kind      model.SpanKind
	text      string
	bracketed bool
}

// Line renders one line. Bracket delimiters are dropped from the output;
// whitespace and lyric text are copied exactly.
func Line(line string, semitones int) []model.Span {
	segs := scan(line, semitones)
	spans := make([]model.Span, 0, len(segs))
	for _, s := range segs {
		spans = append(spans, model.Span{Kind: s.kind, Text: s.text})
	}
	return spans
}

// Text renders every '\n' separated line of text.
func Text(text string, semitones int) []model.Line {
	lines := strings.Split(text, "\n")
	res := make([]model.Line, len(lines))
	for i, line := range lines {
		res[i] = Line(line, semitones)
	}
	return res
}

// TransposeLine is the plain-text form of Line: brackets are kept.
func TransposeLine(line string, semitones int) string {
	if semitones == 0 {
		return line
	}
	var sb strings.Builder
	sb.Grow(len(line))
	for _, s := range scan(line, semitones) {
		if s.bracketed {
			sb.WriteByte('[')
			sb.WriteString(s.text)
			sb.WriteByte(']')
			continue
		}
		sb.WriteString(s.text)
	}
	return sb.String()
}

// TransposeText transposes every chord in text. A zero offset returns
// text unchanged.
func TransposeText(text string, semitones int) string {
	if semitones == 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = TransposeLine(line, semitones)
	}
	return strings.Join(lines, "\n")
}

func scan(line string, semitones int) []segment {
	if strings.Contains(line, "[") {
		return scanBracketed(line, semitones)
	}
	return scanNaked(line, semitones)
}

// scanBracketed treats each "[...]" group as a chord. An unterminated '['
// and an empty "[]" are lyric text. If a second '[' opens before the first
// one closes, the first is demoted to lyric text.
func scanBracketed(line string, semitones int) []segment {
	var segs []segment
	var lyric strings.Builder
	flush := func() {
		if lyric.Len() > 0 {
			segs = append(segs, segment{kind: model.Lyric, text: lyric.String()})
			lyric.Reset()
		}
	}

	rest := line
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			lyric.WriteString(rest)
			break
		}
		lyric.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexAny(rest[1:], "[]")
		if end < 0 {
			lyric.WriteString(rest)
			break
		}
		end++
		if rest[end] == '[' || end == 1 {
			// nested or empty
			lyric.WriteString(rest[:end])
			rest = rest[end:]
			if rest[0] == ']' {
				lyric.WriteByte(']')
				rest = rest[1:]
			}
			continue
		}

		flush()
		segs = append(segs, segment{
			kind:      model.Chord,
			text:      transposeAnnotation(rest[1:end], semitones),
			bracketed: true,
		})
		rest = rest[end+1:]
	}
	flush()
	return segs
}

// transposeAnnotation transposes the inside of a bracket. Each slash part
// keeps its surrounding padding so "[ C / E ]" stays aligned.
func transposeAnnotation(inner string, semitones int) string {
	if semitones == 0 {
		return inner
	}
	parts := strings.Split(inner, "/")
	for i, part := range parts {
		core := strings.TrimSpace(part)
		if core == "" {
			continue
		}
		lead := strings.Index(part, core)
		parts[i] = part[:lead] + chord.Transpose(core, semitones) + part[lead+len(core):]
	}
	return strings.Join(parts, "/")
}

// scanNaked splits line into whitespace runs and words, keeping every run
// as its own lyric segment.
func scanNaked(line string, semitones int) []segment {
	var segs []segment
	for len(line) > 0 {
		n := runLength(line)
		word := line[:n]
		line = line[n:]

		r, _ := utf8.DecodeRuneInString(word)
		switch {
		case unicode.IsSpace(r):
			segs = append(segs, segment{kind: model.Lyric, text: word})
		case chord.IsChordWord(word):
			segs = append(segs, segment{kind: model.Chord, text: chord.Transpose(word, semitones)})
		default:
			segs = append(segs, segment{kind: model.Lyric, text: word})
		}
	}
	return segs
}

// runLength returns the byte length of the leading run of either all
// whitespace or all non-whitespace runes.
func runLength(s string) int {
	first, size := utf8.DecodeRuneInString(s)
	space := unicode.IsSpace(first)
	n := size
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if unicode.IsSpace(r) != space {
			break
		}
		n += size
	}
	return n
}
