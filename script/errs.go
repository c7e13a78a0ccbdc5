package script

import "errors"

var (
	ErrScript     = errors.New("script error")
	ErrConversion = errors.New("cannot convert lua value")
	ErrNoOutput   = errors.New("script produced no output")
)
