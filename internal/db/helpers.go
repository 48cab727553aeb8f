package db

import (
	"database/sql"
	"time"
)

// NullTime converts an optional time into a driver-friendly value.
func NullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// TimePtr unwraps a scanned nullable DATETIME column.
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
