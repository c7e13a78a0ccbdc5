package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/rmarshal/value"
)

var (
	intRE   = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatRE = regexp.MustCompile(`^[+-]?([0-9]+([.][0-9]*)?|[.][0-9]+)$`)
)

// Infer guesses the type of a bare scalar: "~" is nil, true/on and
// false/off in any case are booleans, then integers and floats; anything
// else is a string. An integer out of range is an error.
func Infer(s string) (*value.Value, error) {
	if s == "~" {
		return value.Nil(), nil
	}
	switch strings.ToLower(s) {
	case "true", "on":
		return value.FromBool(true), nil
	case "false", "off":
		return value.FromBool(false), nil
	}
	if intRE.MatchString(s) {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: integer %s out of range", ErrDecode, s)
		}
		return value.FromInt(i), nil
	}
	if floatRE.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return value.FromFloat(f), nil
		}
	}
	return value.FromString(s), nil
}

// DecodePlain infers the value of data minus one trailing newline.
func DecodePlain(data []byte) (*value.Value, error) {
	s := strings.TrimSuffix(string(data), "\n")
	return Infer(s)
}

func EncodePlain(v *value.Value) ([]byte, error) {
	s, ok := v.Text()
	if !ok {
		return nil, fmt.Errorf("%w: plain text cannot hold %s", ErrEncode, v.Type)
	}
	return []byte(s), nil
}
