package cmd

import (
	"errors"
	"fmt"
	"strings"
)

// errRejected makes `saw load --strict` exit non-zero.
var errRejected = errors.New("some recipes were rejected")

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// dbLockHint returns actionable guidance when the catalog database is held
// by another process, typically a running `saw watch`.
func dbLockHint(dbPath string) string {
	return fmt.Sprintf("catalog database %s is locked by another process\n"+
		"  → a running `saw watch` only reads it at startup; stop it or retry\n"+
		"  → or pass --catalog-file to skip the database", dbPath)
}
