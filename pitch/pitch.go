// Package pitch models the twelve chromatic pitch classes and the
// spellings that resolve to them.
package pitch

import "github.com/jsphweid/chordflow/util"

// Class is a chromatic pitch class in [0, 11], C = 0.
type Class int

const NumClasses = 12

// names is the output alphabet. Flats are accepted on input but never
// written.
var names = [NumClasses]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = [NumClasses]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// aliases maps every accepted spelling to its class. Read-only after init.
var aliases map[string]Class

func init() {
	aliases = make(map[string]Class, 2*NumClasses+4)
	for i := 0; i < NumClasses; i++ {
		aliases[names[i]] = Class(i)
		aliases[flatNames[i]] = Class(i)
	}
	aliases["Cb"] = 11
	aliases["Fb"] = 4
	aliases["B#"] = 0
	aliases["E#"] = 5
}

// Index resolves a note root such as "C#", "Db" or "E#" to its class.
func Index(name string) (Class, bool) {
	c, ok := aliases[name]
	return c, ok
}

// Name returns the canonical sharp spelling.
func (c Class) Name() string {
	return names[c.normalize()]
}

func (c Class) String() string {
	return c.Name()
}

// Shift moves the class by a signed number of semitones, wrapping around
// the octave in either direction.
func (c Class) Shift(semitones int) Class {
	return Class(util.Mod(int(c)+semitones%NumClasses, NumClasses))
}

func (c Class) normalize() int {
	return util.Mod(int(c), NumClasses)
}
