// Package source holds the byte-offset source positions shared by every
// pipeline stage, from the lexer through the renderer.
package source

import "fmt"

// FileID identifies a File within a FileSet. Zero is never a valid file.
type FileID uint32

// NoFileID is the sentinel for "no file" (matches the arena convention
// used throughout internal/ast and internal/hir).
const NoFileID FileID = 0

// Span is a half-open byte range [Start, End) within File.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the span's length in bytes.
func (s Span) Len() uint32 { return s.End - s.Start }

// Cover returns the smallest span enclosing both s and other. If the two
// spans belong to different files, s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
