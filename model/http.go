package model

type TextRequestBody struct {
	Text      string `json:"text"`
	Semitones int    `json:"semitones"`
}

type TransposeResponse struct {
	Text string `json:"text"`
}

type RenderResponse struct {
	Lines []Line `json:"lines"`
}

type ArrangementResponse struct {
	Order    []string  `json:"order"`
	Sections []Section `json:"sections"`
	Fallback bool      `json:"fallback"`
}

// LiveState is what a performer pushes to followers.
type LiveState struct {
	SongID    string   `json:"songId"`
	Semitones int      `json:"semitones"`
	Order     []string `json:"order,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
