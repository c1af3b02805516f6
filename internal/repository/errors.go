package repository

import "errors"

// ErrNotFound is the repository-level sentinel returned when a query for a
// single row finds nothing. The service layer translates it into the domain
// error (app_errors.ErrNotFound), keeping business logic independent of
// sql.ErrNoRows and the driver underneath.
var ErrNotFound = errors.New("repository: not found")
