// Package logging assembles the structured slog loggers used by mbdiscid.
//
// It owns the console and JSON handlers, level parsing, and the attribute
// helpers components use to tag records with the device and provider they
// concern. Every logger built here writes to a single diagnostic stream
// (stderr for the CLI) so standard output stays reserved for disc IDs.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
