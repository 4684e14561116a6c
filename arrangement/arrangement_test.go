package arrangement

import (
	"testing"

	"github.com/jsphweid/chordflow/model"
	"github.com/stretchr/testify/assert"
)

var sections = []model.Section{
	{ID: "s1", Name: "Intro", Content: "[B]"},
	{ID: "s2", Name: "Verse 1", Content: "Look at the [B]stars"},
	{ID: "s3", Name: "Chorus", Content: "[E]yellow"},
	{ID: "s4", Name: "chorus", Content: "duplicate name"},
}

func ids(secs []model.Section) []string {
	var res []string
	for _, s := range secs {
		res = append(res, s.ID)
	}
	return res
}

func TestApplyEmptyOrderKeepsAuthoringOrder(t *testing.T) {
	assert.Equal(t, sections, Apply(sections, nil))
	assert.Equal(t, sections, Apply(sections, []string{}))
}

func TestApplyReordersAndFilters(t *testing.T) {
	got := Apply(sections, []string{"chorus", "INTRO"})
	assert.Equal(t, []string{"s3", "s1"}, ids(got))
}

func TestApplySkipsUnknownNames(t *testing.T) {
	got := Apply(sections, []string{"Bridge", "Verse 1", "Outro"})
	assert.Equal(t, []string{"s2"}, ids(got))
}

func TestApplyHonorsDuplicates(t *testing.T) {
	got := Apply(sections, []string{"Chorus", "Verse 1", "Chorus"})
	assert.Equal(t, []string{"s3", "s2", "s3"}, ids(got))
}

func TestApplyNoMatchesIsEmpty(t *testing.T) {
	got := Apply(sections, []string{"Bridge"})
	assert.Empty(t, got)
}

func TestMatches(t *testing.T) {
	assert.Equal(t, 2, Matches(sections, []string{"intro", "Bridge", "chorus"}))
	assert.Equal(t, 0, Matches(sections, nil))
}
