// Package repository is the data access layer for the content store.  Each
// collection gets its own repo type over a shared *sql.DB, with sentinel
// errors so handlers and services can map failures to precise responses.
package repository

import (
	"errors"
	"strings"
)

// ErrSlugExists is returned when a slug uniqueness pre-check fails, and by
// write paths that hit the unique index reactively.  Both paths produce the
// same signal so handlers render a single "slug already exists" conflict.
var ErrSlugExists = errors.New("slug already exists")

// Not-found sentinels, one per collection.
var (
	ErrCountryNotFound   = errors.New("country not found")
	ErrVisaTypeNotFound  = errors.New("visa type not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrArticleNotFound   = errors.New("article not found")
	ErrChecklistNotFound = errors.New("checklist not found")
	ErrItemNotFound      = errors.New("checklist item not found")
	ErrUserNotFound      = errors.New("user not found")
)

// isDuplicate reports whether err is a MySQL 1062 duplicate-entry error.
// database/sql offers no typed sentinel for this, so the error text is
// inspected the same way the rest of the codebase handles driver errors.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
