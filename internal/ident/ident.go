// Package ident generates record identifiers.
package ident

import "github.com/google/uuid"

// New returns a time-ordered identifier: a UUIDv7 carries a millisecond
// timestamp followed by random bits.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
