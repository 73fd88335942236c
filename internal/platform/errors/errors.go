package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrRenderFailed   = errors.New("render failed")
	ErrUnknownPattern = errors.New("unknown pattern")
)
