// Copyright (c) 2026 Gamedex. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gamedex/gamedex/internal/platform/apperr"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Referential integrity is not pre-checked by the service layer: deleting a
// publisher that still owns videogames reaches Postgres and comes back as a
// foreign-key violation, which is surfaced as a 409 Conflict here.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("A row with this key already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict("Operation violates a referential constraint")
		}
	}

	// Unknown query errors become Internal Server Errors.
	return apperr.Internal(err)
}
