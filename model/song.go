package model

type Section struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

type Song struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Artist        string    `json:"artist"`
	Key           string    `json:"key"`
	Tempo         int       `json:"tempo"`
	TimeSignature string    `json:"timeSignature"`
	Sections      []Section `json:"sections"`
	Tags          []string  `json:"tags"`
}

type Setlist struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	SongIDs []string `json:"songIds"`
}

type RenderedSection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Lines []Line `json:"lines"`
}

type RenderedSong struct {
	SongID      string            `json:"songId"`
	Title       string            `json:"title"`
	Artist      string            `json:"artist"`
	Key         string            `json:"key"`
	OriginalKey string            `json:"originalKey"`
	Semitones   int               `json:"semitones"`
	Sections    []RenderedSection `json:"sections"`
}

// SectionNames returns the names in authoring order.
func (s Song) SectionNames() []string {
	res := make([]string, 0, len(s.Sections))
	for _, sec := range s.Sections {
		res = append(res, sec.Name)
	}
	return res
}
