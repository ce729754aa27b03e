package service

import "errors"

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrForbidden         = errors.New("forbidden")          // 403
	ErrInvalidTransition = errors.New("invalid transition") // 409
	ErrEmptyCart         = errors.New("empty cart")         // 400
	ErrConflict          = errors.New("conflict")           // 409
)
