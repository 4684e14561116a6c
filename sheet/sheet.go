// Package sheet converts between plain-text song sheets and model.Song.
//
// A sheet is lyrics with inline [chord] annotations, optionally preceded
// by ChordPro directives ({title: ...}, {key: ...}) and split into
// sections by {start_of_*}/{end_of_*} blocks, {comment: ...} labels or
// bare header lines such as "Chorus:" and "Verse 2".
package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/model"
)

var headerPattern = regexp.MustCompile(
	`(?i)^\[?\s*((?:intro|verse|pre-?chorus|chorus|bridge|outro|interlude|instrumental|solo|tag|coda|refrain|hook|ending)(?:\s+\d+)?)\s*\]?\s*:?$`)

// short forms of start_of_*/end_of_*
var blockShortcuts = map[string]string{
	"soc": "chorus", "sov": "verse", "sob": "bridge",
	"eoc": "chorus", "eov": "verse", "eob": "bridge",
}

type builder struct {
	song     model.Song
	current  *model.Section
	lines    []string
	inBlock  bool
	sawLabel bool
}

func (b *builder) flush() {
	if b.current == nil {
		content := trimBlankLines(b.lines)
		if content != "" {
			b.song.Sections = append(b.song.Sections, model.Section{ID: uuid.NewString(), Content: content})
		}
	} else {
		b.current.Content = trimBlankLines(b.lines)
		b.song.Sections = append(b.song.Sections, *b.current)
	}
	b.current = nil
	b.lines = nil
	b.inBlock = false
}

func (b *builder) start(name string, block bool) {
	b.flush()
	b.sawLabel = true
	b.current = &model.Section{ID: uuid.NewString(), Name: name}
	b.inBlock = block
}

// Parse reads a song sheet. Lines that are neither directives nor
// section headers are kept verbatim as section content.
func Parse(text string) (model.Song, error) {
	b := &builder{song: model.Song{ID: uuid.NewString(), Tags: []string{}}}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if d, ok := parseDirective(line); ok {
			handled, err := b.directive(d)
			if err != nil {
				return model.Song{}, err
			}
			if handled {
				continue
			}
		} else if !b.inBlock {
			if m := headerPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				b.start(m[1], false)
				continue
			}
		}
		b.lines = append(b.lines, line)
	}
	b.flush()

	// untitled leading text gets a name once the rest of the song is known
	for i := range b.song.Sections {
		if b.song.Sections[i].Name != "" {
			continue
		}
		if b.sawLabel {
			b.song.Sections[i].Name = "Verse"
		} else {
			b.song.Sections[i].Name = "Song"
		}
	}
	if b.song.Sections == nil {
		b.song.Sections = []model.Section{}
	}
	return b.song, nil
}

func (b *builder) directive(d Directive) (bool, error) {
	if short, ok := blockShortcuts[d.Name]; ok {
		if strings.HasPrefix(d.Name, "s") {
			d.Name = "start_of_" + short
		} else {
			d.Name = "end_of_" + short
		}
	}

	switch {
	case strings.HasPrefix(d.Name, "start_of_"):
		name := d.Value
		if name == "" {
			name = titleCase(strings.TrimPrefix(d.Name, "start_of_"))
		}
		b.start(name, true)
		return true, nil
	case strings.HasPrefix(d.Name, "end_of_"):
		if b.current != nil {
			b.flush()
		}
		return true, nil
	}

	// inside an explicit block only the closing directive is structural
	if b.inBlock {
		return false, nil
	}

	switch d.Name {
	case "title", "t":
		b.song.Title = d.Value
	case "artist", "subtitle", "st":
		b.song.Artist = d.Value
	case "key":
		b.song.Key = d.Value
	case "tempo":
		tempo, err := strconv.Atoi(d.Value)
		if err != nil || tempo < 0 {
			return false, apperrors.NewValidation("tempo", fmt.Sprintf("%q is not a tempo", d.Value))
		}
		b.song.Tempo = tempo
	case "time":
		b.song.TimeSignature = d.Value
	case "tag":
		if d.Value != "" {
			b.song.Tags = append(b.song.Tags, d.Value)
		}
	case "comment", "c":
		if d.Value == "" {
			return false, nil
		}
		b.start(d.Value, false)
	default:
		return false, nil
	}
	return true, nil
}

// Format writes song as a sheet that Parse reads back to the same
// metadata, section names and section content.
func Format(song model.Song) string {
	var sb strings.Builder
	writeDirective := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "{%s: %s}\n", name, value)
		}
	}

	writeDirective("title", song.Title)
	writeDirective("artist", song.Artist)
	writeDirective("key", song.Key)
	if song.Tempo > 0 {
		writeDirective("tempo", strconv.Itoa(song.Tempo))
	}
	writeDirective("time", song.TimeSignature)
	for _, tag := range song.Tags {
		writeDirective("tag", tag)
	}

	for _, sec := range song.Sections {
		sb.WriteString("\n")
		writeDirective("start_of_part", sec.Name)
		if sec.Name == "" {
			sb.WriteString("{start_of_part}\n")
		}
		if sec.Content != "" {
			sb.WriteString(sec.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("{end_of_part}\n")
	}
	return sb.String()
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
