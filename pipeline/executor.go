package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/rmarshal/codec"
	"github.com/signadot/rmarshal/debug"
	"github.com/signadot/rmarshal/format"
	"github.com/signadot/rmarshal/script"
	"github.com/signadot/rmarshal/template"
	"github.com/signadot/rmarshal/unit"
	"github.com/signadot/rmarshal/value"
)

// Executor runs units. Files named unit.Stdio are read from Stdin and
// written to Stdout; other paths go through ReadFile and WriteFile.
type Executor struct {
	ReadFile  func(path string) ([]byte, error)
	WriteFile func(path string, data []byte) error
	Stdin     io.Reader
	Stdout    io.Writer
}

// NewExecutor returns an Executor on the file system and process stdio.
func NewExecutor() *Executor {
	return &Executor{
		ReadFile: os.ReadFile,
		WriteFile: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

type run struct {
	*Executor
	units []*unit.Unit
	q     Queue
	// done is set by a check command.
	done bool
}

// Run executes units in order: the input phase, the command phase and the
// output phase, then checks that every value and unit was consumed. A check
// command ends the run successfully right away.
func (e *Executor) Run(units []*unit.Unit) error {
	r := &run{Executor: e, units: units}
	if err := r.inputs(); err != nil {
		return err
	}
	r.logQueue("inputs")
	if err := r.commands(); err != nil {
		return err
	}
	if r.done {
		return nil
	}
	r.logQueue("commands")
	if err := r.outputs(); err != nil {
		return err
	}
	if r.q.Len() > 0 || len(r.units) > 0 {
		return fmt.Errorf("%w: %d values and %d units left", ErrLeftover, r.q.Len(), len(r.units))
	}
	return nil
}

func (r *run) logQueue(phase string) {
	if !debug.Queue() {
		return
	}
	debug.Logf("queue after %s: %v\n", phase, r.q.Snapshot())
}

func (r *run) front() *unit.Unit {
	if len(r.units) == 0 {
		return nil
	}
	return r.units[0]
}

func (r *run) pop() *unit.Unit {
	u := r.units[0]
	r.units = r.units[1:]
	return u
}

func (r *run) read(path string) ([]byte, error) {
	var (
		d   []byte
		err error
	)
	if path == unit.Stdio {
		d, err = io.ReadAll(r.Stdin)
	} else {
		d, err = r.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return d, nil
}

func (r *run) write(path string, d []byte) error {
	var err error
	if path == unit.Stdio {
		_, err = r.Stdout.Write(d)
	} else {
		err = r.WriteFile(path, d)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (r *run) inputs() error {
	for u := r.front(); u != nil && u.Type.IsSource(); u = r.front() {
		r.pop()
		switch u.Type {
		case unit.DocumentType:
			v, err := decodeDocument(u.Document, r.q.vs)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrDecode, u, err)
			}
			r.q.PushBack(v)
		case unit.FileType:
			vs, err := r.decodeFile(u.File)
			if err != nil {
				return err
			}
			r.q.PushBack(vs...)
		}
	}
	return nil
}

func (r *run) decodeFile(f *unit.File) ([]*value.Value, error) {
	d, err := r.read(f.Path)
	if err != nil {
		return nil, err
	}
	docs := [][]byte{d}
	if f.HasStream && f.Format == format.YAMLFormat {
		docs = docs[:0]
		for _, doc := range codec.SplitYAMLStream(string(d)) {
			docs = append(docs, []byte(doc))
		}
	}
	res := make([]*value.Value, 0, len(docs))
	for i, doc := range docs {
		v, err := codec.Decode(f.Format, doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s document %d: %w", ErrDecode, f.Path, i+1, err)
		}
		res = append(res, v)
	}
	return res, nil
}

func (r *run) commands() error {
	for u := r.front(); u != nil && u.Type.IsCommand(); u = r.front() {
		r.pop()
		var err error
		switch u.Type {
		case unit.CopyType:
			return nil
		case unit.CheckType:
			r.done = true
			return nil
		case unit.ConcatType:
			err = r.concat()
		case unit.MergeType:
			err = r.merge(u.Depth)
		case unit.PackType:
			r.q.PushBack(value.FromSlice(r.q.Drain()))
		case unit.UnpackType:
			err = r.unpack()
		case unit.RenderType:
			err = r.render(u.Path)
		case unit.TransformType:
			err = r.transform(u.Path)
		}
		if err != nil {
			return err
		}
		r.logQueue(u.Type.String())
	}
	return nil
}

// concat joins the elements of all queued arrays into one array.
func (r *run) concat() error {
	var elts []*value.Value
	for i, v := range r.q.vs {
		if v.Type != value.ArrayType {
			return fmt.Errorf("%w: concat value %d is %s, not an array", ErrArity, i+1, v.Type)
		}
		elts = append(elts, v.Values...)
	}
	r.q.Drain()
	r.q.PushBack(value.FromSlice(elts))
	return nil
}

func (r *run) unpack() error {
	for i, v := range r.q.vs {
		if v.Type != value.ArrayType {
			return fmt.Errorf("%w: unpack value %d is %s, not an array", ErrArity, i+1, v.Type)
		}
	}
	for _, v := range r.q.Drain() {
		r.q.PushBack(v.Values...)
	}
	return nil
}

// merge folds the queue from the front until one value remains.
func (r *run) merge(depth int) error {
	if r.q.Len() == 0 {
		return fmt.Errorf("%w: nothing to merge", ErrArity)
	}
	for r.q.Len() > 1 {
		left, _ := r.q.PopFront()
		right, _ := r.q.PopFront()
		r.q.PushFront(value.Merge(left, right, depth))
	}
	return nil
}

func (r *run) render(path string) error {
	d, err := r.read(path)
	if err != nil {
		return err
	}
	src, err := template.Compile(d)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, path, err)
	}
	text, err := script.Render(path, src, r.q.Drain())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, path, err)
	}
	r.q.PushBack(value.FromString(text))
	return nil
}

func (r *run) transform(path string) error {
	d, err := r.read(path)
	if err != nil {
		return err
	}
	outs, err := script.Run(path, string(d), r.q.Drain())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScript, path, err)
	}
	r.q.PushBack(outs...)
	return nil
}

func (r *run) outputs() error {
	for u := r.front(); u != nil && u.Type == unit.FileType; u = r.front() {
		r.pop()
		d, err := r.encodeFile(u.File)
		if err != nil {
			return err
		}
		if err := r.write(u.File.Path, d); err != nil {
			return err
		}
	}
	return nil
}

// encodeFile consumes the values of one output file and returns its
// content.
func (r *run) encodeFile(f *unit.File) ([]byte, error) {
	opts := codec.Options{Pretty: f.Pretty, Dots: f.Dots, Fix: f.Fix}
	buf := &bytes.Buffer{}
	for n := f.Count(); n != 0; n-- {
		v, ok := r.q.PopFront()
		if !ok {
			if n < 0 {
				break
			}
			return nil, fmt.Errorf("%w: %s wants %d more", ErrStreamUnderflow, f.Path, n)
		}
		d, err := codec.Encode(f.Format, v, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEncode, f.Path, err)
		}
		buf.Write(d)
		if f.EOL && !bytes.HasSuffix(buf.Bytes(), []byte{'\n'}) {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}
