package source

import "fortio.org/safecast"

// File is a single source of dice-expression text. The engine evaluates
// one expression per call, but the REPL reuses a single FileSet across a
// session so diagnostics keep stable file IDs line to line.
type File struct {
	ID   FileID
	Name string
	Text string
}

// FileSet owns the collection of Files referenced by spans in an AST,
// HIR module, or compiled graph.
type FileSet struct {
	files []File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make([]File, 0, 1)}
}

// Add registers a new File and returns its FileID.
func (fs *FileSet) Add(name, text string) FileID {
	idx, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(err)
	}
	id := FileID(idx + 1)
	fs.files = append(fs.files, File{ID: id, Name: name, Text: text})
	return id
}

// Get returns the File for id, or the zero File if id is invalid.
func (fs *FileSet) Get(id FileID) File {
	if id == NoFileID || int(id) > len(fs.files) {
		return File{}
	}
	return fs.files[id-1]
}

// Snippet returns the source text covered by sp, or "" if sp refers to an
// unknown file or is out of range.
func (fs *FileSet) Snippet(sp Span) string {
	f := fs.Get(sp.File)
	if f.Name == "" && f.Text == "" {
		return ""
	}
	if int(sp.End) > len(f.Text) || sp.Start > sp.End {
		return ""
	}
	return f.Text[sp.Start:sp.End]
}
