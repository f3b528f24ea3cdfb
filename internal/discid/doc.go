// Package discid defines the disc ID provider capability and its concrete
// implementations.
//
// A Provider reports whether it can run on this host and, given a device
// path, returns a disc ID or a *DiscError carrying a human-readable message.
// Callers depend only on that interface, so the backing library (libdiscid,
// native Linux ioctls, or the cd-discid command) can change without touching
// the CLI. Resolve picks a provider by name or auto-selects the first
// available one.
package discid
