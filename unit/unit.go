package unit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/rmarshal/format"
)

// Stdio is the path placeholder for standard input or standard output.
const Stdio = "-"

type Type int

const (
	DocumentType Type = iota
	FileType
	CheckType
	ConcatType
	CopyType
	MergeType
	PackType
	UnpackType
	RenderType
	TransformType
)

func (t Type) String() string {
	return map[Type]string{
		DocumentType:  "document",
		FileType:      "file",
		CheckType:     "check",
		ConcatType:    "concat",
		CopyType:      "copy",
		MergeType:     "merge",
		PackType:      "pack",
		UnpackType:    "unpack",
		RenderType:    "render",
		TransformType: "transform",
	}[t]
}

// IsSource reports whether units of type t produce values.
func (t Type) IsSource() bool {
	return t == DocumentType || t == FileType
}

// IsCommand reports whether t is neither a document nor a file.
func (t Type) IsCommand() bool {
	return !t.IsSource()
}

type Unit struct {
	Type Type

	// Document is set for DocumentType.
	Document *Document
	// File is set for FileType.
	File *File
	// Path is the template or script of RenderType and TransformType.
	Path string
	// Depth bounds MergeType, negative means unbounded.
	Depth int
}

type Document struct {
	Hint    Hint
	Content string
}

type File struct {
	Path   string
	Format format.Format
	Dots   bool
	EOL    bool
	Fix    bool
	Pretty bool
	// HasStream marks a multi document file. Stream is the number of
	// documents an output file takes, -1 meaning all remaining.
	HasStream bool
	Stream    int
}

// Count returns how many values an output file consumes, -1 meaning all.
func (f *File) Count() int {
	if !f.HasStream {
		return 1
	}
	return f.Stream
}

func NewDocument(h Hint, content string) *Unit {
	return &Unit{Type: DocumentType, Document: &Document{Hint: h, Content: content}}
}

// NewFile returns a file unit whose format follows the extension of path.
func NewFile(path string) *Unit {
	return &Unit{Type: FileType, File: &File{Path: path, Format: format.ForPath(path)}}
}

func NewMerge(depth int) *Unit {
	return &Unit{Type: MergeType, Depth: depth}
}

func NewRender(path string) *Unit {
	return &Unit{Type: RenderType, Path: path}
}

func NewTransform(path string) *Unit {
	return &Unit{Type: TransformType, Path: path}
}

func NewCommand(t Type) *Unit {
	return &Unit{Type: t}
}

func (u *Unit) String() string {
	switch u.Type {
	case DocumentType:
		return fmt.Sprintf("document %s %q", u.Document.Hint, u.Document.Content)
	case FileType:
		f := u.File
		sb := &strings.Builder{}
		fmt.Fprintf(sb, "file %s %q", f.Format, f.Path)
		for _, flag := range []struct {
			on   bool
			name string
		}{{f.Dots, "dots"}, {f.EOL, "eol"}, {f.Fix, "fix"}, {f.Pretty, "pretty"}} {
			if flag.on {
				sb.WriteString(" " + flag.name)
			}
		}
		if f.HasStream {
			sb.WriteString(" stream=" + strconv.Itoa(f.Stream))
		}
		return sb.String()
	case MergeType:
		return "merge depth=" + strconv.Itoa(u.Depth)
	case RenderType, TransformType:
		return fmt.Sprintf("%s %q", u.Type, u.Path)
	}
	return u.Type.String()
}
