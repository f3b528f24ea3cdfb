// Package config loads, normalizes, and validates mbdiscid configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the MBDISCID_PROVIDER environment override. A
// missing config file is not an error: the defaults describe a working
// setup that auto-selects the first available disc ID provider.
package config
