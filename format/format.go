package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	PlainFormat Format = iota
	JSONFormat
	LuaFormat
	TOMLFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"plain": PlainFormat,
		"json":  JSONFormat,
		"lua":   LuaFormat,
		"toml":  TOMLFormat,
		"yaml":  YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// ForPath infers the format from the extension of path, case insensitively.
// Unknown extensions are plain.
func ForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat
	case ".lua":
		return LuaFormat
	case ".toml":
		return TOMLFormat
	case ".yaml", ".yml":
		return YAMLFormat
	}
	return PlainFormat
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case PlainFormat:
		return []byte("plain"), nil
	case JSONFormat:
		return []byte("json"), nil
	case LuaFormat:
		return []byte("lua"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case LuaFormat:
		return ".lua"
	case TOMLFormat:
		return ".toml"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{PlainFormat, JSONFormat, LuaFormat, TOMLFormat, YAMLFormat}
}
