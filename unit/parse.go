package unit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/rmarshal/debug"
	"github.com/signadot/rmarshal/format"
)

var ErrParameter = errors.New("wrong parameter")

type parser struct {
	args []string
}

func (p *parser) more() bool {
	return len(p.args) > 0
}

func (p *parser) peek() string {
	return p.args[0]
}

func (p *parser) next(what string) (string, error) {
	if len(p.args) == 0 {
		return "", fmt.Errorf("%w: missing %s", ErrParameter, what)
	}
	a := p.args[0]
	p.args = p.args[1:]
	return a, nil
}

// path takes the next argument as a path. Paths other than Stdio may not
// look like options.
func (p *parser) path(what string) (string, error) {
	a, err := p.next(what)
	if err != nil {
		return "", err
	}
	if a != Stdio && strings.HasPrefix(a, "-") {
		return "", fmt.Errorf("%w: wrong %s %q", ErrParameter, what, a)
	}
	return a, nil
}

// Parse turns command line arguments into units.
func Parse(args []string) ([]*Unit, error) {
	p := &parser{args: args}
	var res []*Unit
	for p.more() {
		arg, _ := p.next("argument")
		var (
			u   *Unit
			err error
		)
		switch {
		case arg == Stdio:
			u = NewFile(Stdio)
		case strings.HasPrefix(arg, "--"):
			u, err = p.long(arg[2:])
		case strings.HasPrefix(arg, "-"):
			u, err = p.short(arg[1:])
		default:
			u = NewFile(arg)
		}
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	if debug.Units() {
		for i, u := range res {
			debug.Logf("unit[%d] %s\n", i, u)
		}
	}
	return res, nil
}

func (p *parser) long(opt string) (*Unit, error) {
	switch opt {
	case "":
		return nil, fmt.Errorf("%w: empty option", ErrParameter)
	case "document":
		return p.document("")
	case "check":
		return NewCommand(CheckType), nil
	case "concat":
		return NewCommand(ConcatType), nil
	case "copy":
		return NewCommand(CopyType), nil
	case "merge":
		return p.merge()
	case "pack":
		return NewCommand(PackType), nil
	case "unpack":
		return NewCommand(UnpackType), nil
	case "render":
		path, err := p.path("template path")
		if err != nil {
			return nil, err
		}
		return NewRender(path), nil
	case "transform":
		path, err := p.path("lua path")
		if err != nil {
			return nil, err
		}
		return NewTransform(path), nil
	}
	f, err := format.ParseFormat(opt)
	if err != nil {
		return nil, err
	}
	return p.file(f)
}

func (p *parser) short(opt string) (*Unit, error) {
	if opt == "" {
		return nil, fmt.Errorf("%w: empty option", ErrParameter)
	}
	switch opt[0] {
	case 'D':
		return p.document(opt[1:])
	case 'C':
		if len(opt) == 1 {
			return NewCommand(CopyType), nil
		}
	case 'R':
		if len(opt) == 1 {
			path, err := p.path("template path")
			if err != nil {
				return nil, err
			}
			return NewRender(path), nil
		}
	case 'T':
		if len(opt) == 1 {
			path, err := p.path("lua path")
			if err != nil {
				return nil, err
			}
			return NewTransform(path), nil
		}
	}
	return nil, fmt.Errorf("%w: unknown option -%s", ErrParameter, opt)
}

// document parses the hint and content of a document. attached is what
// followed -D in the same argument: nothing, a hint letter, or a hint
// letter followed by the content.
func (p *parser) document(attached string) (*Unit, error) {
	var hint, content string
	var err error
	switch {
	case len(attached) > 1:
		hint, content = attached[:1], attached[1:]
	case len(attached) == 1:
		hint = attached
		if content, err = p.next("document content"); err != nil {
			return nil, err
		}
	default:
		if hint, err = p.next("document hint"); err != nil {
			return nil, err
		}
		if content, err = p.next("document content"); err != nil {
			return nil, err
		}
	}
	h, err := ParseHint(hint)
	if err != nil {
		return nil, err
	}
	return NewDocument(h, content), nil
}

// flagValue splits an option argument such as --depth=2, --depth, -d2 or
// -d. ok is false if arg is not the option at all.
func flagValue(arg, long, short string) (val string, hasVal, ok bool) {
	if rest, found := strings.CutPrefix(arg, "--"+long); found {
		if rest == "" {
			return "", false, true
		}
		if v, found := strings.CutPrefix(rest, "="); found {
			return v, true, true
		}
		return "", false, false
	}
	if rest, found := strings.CutPrefix(arg, "-"+short); found {
		if rest == "" {
			return "", false, true
		}
		return rest, true, true
	}
	return "", false, false
}

func (p *parser) merge() (*Unit, error) {
	u := NewMerge(-1)
	for p.more() {
		val, hasVal, ok := flagValue(p.peek(), "depth", "d")
		if !ok {
			break
		}
		p.next("depth")
		if !hasVal {
			v, err := p.next("merge depth")
			if err != nil {
				return nil, err
			}
			val = v
		}
		d, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("%w: merge depth %q", ErrParameter, val)
		}
		u.Depth = d
	}
	return u, nil
}

func (p *parser) file(f format.Format) (*Unit, error) {
	file := &File{Format: f}
	for {
		if !p.more() {
			return nil, fmt.Errorf("%w: missing %s path", ErrParameter, f)
		}
		arg := p.peek()
		switch arg {
		case "--dots":
			file.Dots = true
		case "--eol":
			file.EOL = true
		case "--fix":
			file.Fix = true
		case "--pretty":
			file.Pretty = true
		default:
			val, hasVal, ok := flagValue(arg, "stream", "s")
			if !ok {
				path, err := p.path(f.String() + " path")
				if err != nil {
					return nil, err
				}
				file.Path = path
				return &Unit{Type: FileType, File: file}, nil
			}
			file.HasStream = true
			file.Stream = -1
			if hasVal {
				n, err := strconv.Atoi(val)
				if err != nil {
					return nil, fmt.Errorf("%w: stream count %q", ErrParameter, val)
				}
				file.Stream = n
			}
		}
		p.next("file option")
	}
}
