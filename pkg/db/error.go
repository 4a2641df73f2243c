package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (error code 23505)
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// MySQL (error code 1062)
	if strings.Contains(err.Error(), "Error 1062") {
		return true
	}

	// SQLite (error code 2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}

// IsMissingFieldErr reports whether the store rejected a write because a
// required column was not supplied (NOT NULL violation).
func IsMissingFieldErr(err error) bool {
	if err == nil {
		return false
	}

	// PostgreSQL (error code 23502)
	if strings.Contains(err.Error(), "null value in column") {
		return true
	}

	// MySQL (error code 1048)
	if strings.Contains(err.Error(), "Error 1048") {
		return true
	}

	// SQLite (error code 1299)
	if strings.Contains(err.Error(), "NOT NULL constraint failed") {
		return true
	}

	return false
}
