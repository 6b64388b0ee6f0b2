package domain

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrDecode        = errors.New("image decode failed")
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrCorruptStore  = errors.New("store document corrupt")
	ErrPersistence   = errors.New("persistence failed")
)
