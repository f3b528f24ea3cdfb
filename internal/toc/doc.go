// Package toc models an audio CD table of contents and derives the
// identifiers MusicBrainz and FreeDB compute from it.
//
// Offsets are absolute sector addresses that include the 150 sector pregap,
// the same convention libdiscid and cd-discid use. A TOC is validated once at
// construction so the hashing helpers never see malformed input.
package toc
