package source

import "fmt"

// Span is a half-open byte range [Start, End) in one file's normalized
// content. The zero Span points at the start of file 0; rules fall back
// to it when a finding has no better anchor.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 { return s.End - s.Start }

// Contains reports whether off lies inside the half-open range.
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

// Cover returns the smallest span enclosing both s and other.
// Спаны из разных файлов не объединяются, приёмник побеждает.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	return Span{
		File:  s.File,
		Start: min(s.Start, other.Start),
		End:   max(s.End, other.End),
	}
}

// CollapseToStart returns the empty span at Start, an insertion point.
func (s Span) CollapseToStart() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

// CollapseToEnd returns the empty span at End.
func (s Span) CollapseToEnd() Span {
	return Span{File: s.File, Start: s.End, End: s.End}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
