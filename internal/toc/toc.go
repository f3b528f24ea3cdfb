package toc

import (
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// Pregap is the number of sectors before the first track on every disc.
	Pregap = 150
	// MaxTracks is the highest track number a Red Book disc can carry.
	MaxTracks = 99
	// SectorsPerSecond is the CD-DA frame rate.
	SectorsPerSecond = 75

	submissionBaseURL = "https://musicbrainz.org/cdtoc/attach"
)

// ErrInvalidTOC is wrapped by every validation failure returned from New.
var ErrInvalidTOC = errors.New("invalid toc")

// TOC is a validated table of contents.
type TOC struct {
	First   int   `json:"first_track"`
	Last    int   `json:"last_track"`
	Leadout int   `json:"leadout"`
	Offsets []int `json:"offsets"`
}

// New validates the track layout and returns a TOC. Offsets are ordered by
// track number starting at first.
func New(first, last, leadout int, offsets []int) (TOC, error) {
	if first < 1 || first > MaxTracks {
		return TOC{}, fmt.Errorf("%w: first track %d out of range 1-%d", ErrInvalidTOC, first, MaxTracks)
	}
	if last < first || last > MaxTracks {
		return TOC{}, fmt.Errorf("%w: last track %d out of range %d-%d", ErrInvalidTOC, last, first, MaxTracks)
	}
	if want := last - first + 1; len(offsets) != want {
		return TOC{}, fmt.Errorf("%w: got %d track offsets, want %d", ErrInvalidTOC, len(offsets), want)
	}
	prev := 0
	for i, offset := range offsets {
		track := first + i
		if offset < Pregap {
			return TOC{}, fmt.Errorf("%w: track %d offset %d before pregap", ErrInvalidTOC, track, offset)
		}
		if offset <= prev {
			return TOC{}, fmt.Errorf("%w: track %d offset %d not after previous track", ErrInvalidTOC, track, offset)
		}
		prev = offset
	}
	if leadout <= prev {
		return TOC{}, fmt.Errorf("%w: leadout %d not after last track offset %d", ErrInvalidTOC, leadout, prev)
	}

	cp := make([]int, len(offsets))
	copy(cp, offsets)
	return TOC{First: first, Last: last, Leadout: leadout, Offsets: cp}, nil
}

// Tracks returns the number of tracks on the disc.
func (t TOC) Tracks() int {
	return len(t.Offsets)
}

// MusicBrainzID computes the 28 character MusicBrainz disc ID.
func (t TOC) MusicBrainzID() string {
	var b strings.Builder
	b.Grow(2 + 2 + 8*(MaxTracks+1))
	fmt.Fprintf(&b, "%02X%02X%08X", t.First, t.Last, t.Leadout)
	for track := 1; track <= MaxTracks; track++ {
		offset := 0
		if track >= t.First && track <= t.Last {
			offset = t.Offsets[track-t.First]
		}
		fmt.Fprintf(&b, "%08X", offset)
	}

	sum := sha1.Sum([]byte(b.String()))
	id := base64.StdEncoding.EncodeToString(sum[:])
	return strings.NewReplacer("+", ".", "/", "_", "=", "-").Replace(id)
}

// FreeDBID computes the legacy CDDB disc ID as eight lower-case hex digits.
func (t TOC) FreeDBID() string {
	n := 0
	for _, offset := range t.Offsets {
		n += digitSum(offset / SectorsPerSecond)
	}
	length := t.Leadout/SectorsPerSecond - t.Offsets[0]/SectorsPerSecond
	id := uint32(n%255)<<24 | uint32(length)<<8 | uint32(t.Tracks())
	return fmt.Sprintf("%08x", id)
}

// String renders the TOC as "first last leadout offset1 ... offsetN".
func (t TOC) String() string {
	return strings.Join(t.fields(), " ")
}

// SubmissionURL returns the MusicBrainz page for attaching this TOC to a
// release.
func (t TOC) SubmissionURL() string {
	query := url.Values{}
	query.Set("id", t.MusicBrainzID())
	query.Set("tracks", strconv.Itoa(t.Tracks()))
	// MusicBrainz expects literal '+' separators, which url.Values would escape.
	return submissionBaseURL + "?" + query.Encode() + "&toc=" + strings.Join(t.fields(), "+")
}

func (t TOC) fields() []string {
	fields := make([]string, 0, 3+len(t.Offsets))
	fields = append(fields, strconv.Itoa(t.First), strconv.Itoa(t.Last), strconv.Itoa(t.Leadout))
	for _, offset := range t.Offsets {
		fields = append(fields, strconv.Itoa(offset))
	}
	return fields
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
