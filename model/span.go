package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type SpanKind uint8

const (
	Lyric SpanKind = iota
	Chord
)

func (k SpanKind) String() string {
	switch k {
	case Chord:
		return "chord"
	case Lyric:
		return "lyric"
	}
	return fmt.Sprintf("SpanKind(%d)", uint8(k))
}

func (k SpanKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *SpanKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "chord":
		*k = Chord
	case "lyric":
		*k = Lyric
	default:
		return fmt.Errorf("unknown span kind %q", s)
	}
	return nil
}

// Span is a run of a rendered line that is either a chord or lyric text.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

type Line = []Span

// JoinSpans concatenates span texts, ignoring kind.
func JoinSpans(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
