package repository

import "errors"

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateEmail indicates an account with the same email already exists.
var ErrDuplicateEmail = errors.New("repository: duplicate email")
