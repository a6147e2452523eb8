// Package uuid generates the time-ordered identifiers used as primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Version 7 ids sort by creation time, which keeps
// btree inserts append-only and gives list endpoints a natural tie-break.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Only fails when the random source does.
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	return googleuuid.Validate(s) == nil
}
