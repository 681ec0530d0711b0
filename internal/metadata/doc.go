// Package metadata navigates, merges and interpolates the JSON-like values
// decoded from front matter, config and site metadata files.
//
// Values are the shapes produced by the YAML and JSON decoders: maps keyed by
// string, slices of any, strings, bools, numbers, time.Time and nil.
package metadata
