package repository

import "errors"

// ErrNotFound indica que la fila pedida no existe.
var ErrNotFound = errors.New("not found")

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
