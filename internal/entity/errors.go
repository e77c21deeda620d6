package entity

import "errors"

// Domain errors for the study engine.
var (
	ErrMalformedInput       = errors.New("malformed input: no usable rows")
	ErrInsufficientPoolSize = errors.New("insufficient pool size")
	ErrInvalidGrade         = errors.New("invalid grade")
	ErrInvalidConfig        = errors.New("invalid engine configuration")
)
