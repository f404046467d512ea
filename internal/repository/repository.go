// Package repository implements Postgres persistence for the CRM
// aggregates. JSON columns round-trip through the models' Valuer/Scanner
// types, so queries bind slice and map fields directly.
package repository

import "errors"

var (
	// ErrNotFound reports that no row matched the given id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports a uniqueness conflict on create.
	ErrDuplicate = errors.New("already exists")
)
