// Package main hosts the mbdiscid CLI entrypoint and command graph.
//
// Invoked with a single device path, mbdiscid prints the MusicBrainz disc ID
// of the disc in that drive and nothing else on stdout. Every failure goes to
// stderr as a one-line diagnostic and exits 1. The subcommands (providers,
// toc, watch, config) reuse the same configuration and provider resolution.
//
// Disc reading and hashing live in internal/discid and the packages below it;
// commands here only resolve a provider, call it and render the result.
package main
