// Package uid generates identifiers: numeric ids for rows, strings for
// correlation ids and opaque tokens.
package uid

// NumberID generates unique, roughly time ordered int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
