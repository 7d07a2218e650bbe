package store

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrEmailTaken          = errors.New("email already registered")
	ErrMissingOwner        = errors.New("query has no owner")
)
