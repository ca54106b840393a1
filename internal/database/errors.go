package database

import "errors"

// ErrNotFound is returned when an operation references a row that does
// not exist, e.g. submitting a review for a problem with no card.
var ErrNotFound = errors.New("not found")

// ErrInvalidSnapshot is returned when an import payload cannot be
// parsed. Nothing is written in that case.
var ErrInvalidSnapshot = errors.New("invalid snapshot payload")
