package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness or state conflict (HTTP 409).
var Conflict = errors.New("conflict")

// NotFound indicates that the requested resource does not exist, or that an
// ownership-scoped update matched no row. The store cannot distinguish
// "no such package" from "assigned to someone else" by row count alone, so
// both surface as NotFound.
var NotFound = errors.New("not found")
