package midi

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt copies mf starting at fromTick with at most maxNotes note
// starts per track. Meta and controller events are kept, those before the
// window pulled to its start, so the excerpt plays with the same tempo
// and program. A note end is kept only when its start was kept.
func Excerpt(mf *smf.SMF, fromTick uint64, maxNotes int) *smf.SMF {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks, lastKept uint64
		var numNotes int
		sounding := map[[2]uint8]int{}
		for _, evt := range track {
			absTicks += uint64(evt.Delta)

			msg := midi.Message(evt.Message)
			var ch, key, vel uint8
			switch {
			case isEndOfTrack(evt.Message):
				continue
			case msg.GetNoteStart(&ch, &key, &vel):
				if absTicks < fromTick || numNotes >= maxNotes {
					continue
				}
				numNotes++
				sounding[[2]uint8{ch, key}]++
			case msg.GetNoteEnd(&ch, &key):
				k := [2]uint8{ch, key}
				if sounding[k] == 0 {
					continue
				}
				sounding[k]--
			}

			var at uint64
			if absTicks > fromTick {
				at = absTicks - fromTick
			}
			evt.Delta = uint32(at - lastKept)
			lastKept = at
			newTrack = append(newTrack, evt)
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}
	return res
}

func isEndOfTrack(m smf.Message) bool {
	return len(m) >= 2 && m[0] == 0xFF && m[1] == 0x2F
}
