package pipeline

import (
	"errors"

	"github.com/signadot/rmarshal/format"
	"github.com/signadot/rmarshal/unit"
)

var (
	ErrRead            = errors.New("cannot read input")
	ErrDecode          = errors.New("wrong input")
	ErrArity           = errors.New("wrong arity")
	ErrScript          = errors.New("script failed")
	ErrEncode          = errors.New("wrong output")
	ErrStreamUnderflow = errors.New("not enough values for stream")
	ErrWrite           = errors.New("cannot write output")
	ErrLeftover        = errors.New("no output")
)

const (
	ExitOK             = 0
	ExitInternal       = 1
	ExitWrongParameter = 10
	ExitUnknownFormat  = 11
	ExitNoInput        = 20
	ExitWrongInput     = 21
	ExitNoOutput       = 30
	ExitWrongOutput    = 31
)

// ExitCode maps an error from parsing or running units to a process exit
// code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrRead):
		return ExitNoInput
	case errors.Is(err, ErrDecode), errors.Is(err, ErrArity), errors.Is(err, ErrScript):
		return ExitWrongInput
	case errors.Is(err, ErrLeftover):
		return ExitNoOutput
	case errors.Is(err, ErrStreamUnderflow), errors.Is(err, ErrEncode), errors.Is(err, ErrWrite):
		return ExitWrongOutput
	case errors.Is(err, unit.ErrParameter):
		return ExitWrongParameter
	case errors.Is(err, format.ErrBadFormat):
		return ExitUnknownFormat
	}
	return ExitInternal
}
