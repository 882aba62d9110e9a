package diagfmt

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"estlint/internal/diag"
	"estlint/internal/source"
)

// editPreview holds the source lines an edit touches, before and after
// applying it.
type editPreview struct {
	before []string
	after  []string
}

// previewEdit renders the lines covered by the edit's span with the
// replacement applied. Spans that do not fit the file are an error, not
// a panic: previews are best-effort decoration.
func previewEdit(fs *source.FileSet, edit diag.FixEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, fmt.Errorf("nil FileSet")
	}
	if int(edit.Span.File) >= fs.Len() {
		return editPreview{}, fmt.Errorf("file %d not in set", edit.Span.File)
	}
	f := fs.Get(edit.Span.File)
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return editPreview{}, fmt.Errorf("content length overflow: %w", err)
	}
	if edit.Span.Start > edit.Span.End || edit.Span.End > size {
		return editPreview{}, fmt.Errorf("edit span %v outside file", edit.Span)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	blockStart := lineStartOffset(f, startPos.Line, size)
	blockEnd := lineEndOffset(f, endPos.Line, size)

	original := f.Content[blockStart:blockEnd]
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart
	patched := slices.Concat(original[:relStart], []byte(edit.NewText), original[relEnd:])

	return editPreview{
		before: previewLines(original),
		after:  previewLines(patched),
	}, nil
}

// previewLines splits a block into display lines. Завершающий \n
// срезается, чтобы превью не кончалось пустой строкой.
func previewLines(block []byte) []string {
	if len(block) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(block), "\n"), "\n")
}

// lineStartOffset returns the byte offset where the 1-based line begins;
// size backs lines past the end of the index.
func lineStartOffset(f *source.File, line, size uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := line - 2; int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return size
}

// lineEndOffset returns the offset one past the line's terminating \n,
// or the file size for the final line.
func lineEndOffset(f *source.File, line, size uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := line - 1; int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return size
}
