package token

import "fmt"

// File describes a single source chunk (a script file or a REPL line) that
// was scanned. It only carries the information needed to format positions,
// since Pos already packs the line and column of a position within it.
type File struct {
	Name string
	Size int
}

// FileSet records the files scanned/parsed/resolved together during a single
// run (e.g. "lox tokenize a.lox b.lox"). It offers no lookup from a Pos to
// its file: a Pos holds only a line and column, so callers pass the matching
// *File to FormatPos themselves.
type FileSet struct {
	files []*File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// AddFile registers a new file of the given name and byte size and returns
// its handle.
func (fs *FileSet) AddFile(name string, size int) *File {
	f := &File{Name: name, Size: size}
	fs.files = append(fs.files, f)
	return f
}

// PosMode controls how FormatPos renders a position.
type PosMode int

const (
	// PosNone omits position information entirely.
	PosNone PosMode = iota
	// PosShort renders only "line:col".
	PosShort
	// PosLong renders "file:line:col".
	PosLong
)

// FormatPos renders pos according to mode. An unknown position is rendered
// as "?" (an AST node's end position is occasionally unknown, e.g. for
// synthesized nodes). isStart does not change the output.
func FormatPos(mode PosMode, file *File, pos Pos, isStart bool) string {
	if mode == PosNone {
		return ""
	}
	if pos.Unknown() {
		return "?"
	}
	line, col := pos.LineCol()
	if mode == PosLong && file != nil && file.Name != "" {
		return fmt.Sprintf("%s:%d:%d", file.Name, line, col)
	}
	return fmt.Sprintf("%d:%d", line, col)
}
