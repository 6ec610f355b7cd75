package orm

import "errors"

// ErrNotFound is returned when a query expects exactly one row but finds none.
var ErrNotFound = errors.New("orm: not found")

// ErrPrimaryKeySet is returned by Create when the row already carries a
// primary key and the key is generated by the database.
var ErrPrimaryKeySet = errors.New("orm: primary key already set")
