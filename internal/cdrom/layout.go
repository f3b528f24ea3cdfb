package cdrom

import (
	"fmt"

	"mbdiscid/internal/toc"
)

// dataTrackGap is the lead-out/lead-in area separating the audio session from
// a trailing data session on an enhanced CD.
const dataTrackGap = 11400

// trackEntry is one decoded TOC entry. LBA excludes the pregap.
type trackEntry struct {
	Number int
	LBA    int
	Data   bool
}

// buildTOC converts raw TOC entries into a toc.TOC. Trailing data tracks are
// dropped so enhanced CDs hash over the audio session only, and the lead-out
// moves to the start of the first dropped track minus the session gap.
func buildTOC(entries []trackEntry, leadoutLBA int) (toc.TOC, error) {
	if len(entries) == 0 {
		return toc.TOC{}, ErrNoAudio
	}

	last := len(entries) - 1
	for last >= 0 && entries[last].Data {
		last--
	}
	if last < 0 {
		return toc.TOC{}, ErrNoAudio
	}
	if last < len(entries)-1 {
		leadoutLBA = entries[last+1].LBA - dataTrackGap
	}

	audio := entries[:last+1]
	offsets := make([]int, len(audio))
	for i, entry := range audio {
		if i > 0 && entry.Number != audio[i-1].Number+1 {
			return toc.TOC{}, fmt.Errorf("track numbering gap between %d and %d", audio[i-1].Number, entry.Number)
		}
		offsets[i] = entry.LBA + toc.Pregap
	}
	return toc.New(audio[0].Number, audio[len(audio)-1].Number, leadoutLBA+toc.Pregap, offsets)
}
