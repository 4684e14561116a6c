package model

// ChordToken is a chord symbol split into its root, the verbatim
// quality/extension suffix and an optional slash bass.
type ChordToken struct {
	Root   string      `json:"root"`
	Suffix string      `json:"suffix,omitempty"`
	Bass   *ChordToken `json:"bass,omitempty"`
}

func (c ChordToken) String() string {
	res := c.Root + c.Suffix
	if c.Bass != nil {
		res += "/" + c.Bass.String()
	}
	return res
}
