package source

// FileID identifies one loaded file inside a FileSet. IDs are dense and
// start at zero, so they double as slice indexes.
type FileID uint32

// FileFlags records what load-time normalization did to the content.
type FileFlags uint8

const (
	// FileVirtual marks in-memory content with no backing file.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM: входной файл начинался с UTF-8 BOM, он срезан.
	FileHadBOM
	// FileNormalizedCRLF: пары \r\n переписаны в \n.
	FileNormalizedCRLF
	// FileTranscoded: содержимое перекодировано из UTF-16 в UTF-8.
	FileTranscoded
)

// File is one stored source text plus the derived data the linter needs:
// a newline index for line/column resolution and a content hash for the
// disk cache. Sidecar byte offsets are interpreted against Content, so
// Content is exactly what every Span in this file indexes into.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Normalized reports whether loading rewrote the bytes. Offsets computed
// by a parser that saw the raw file may be skewed against Content then.
func (f *File) Normalized() bool {
	return f.Flags&(FileNormalizedCRLF|FileTranscoded) != 0
}

// LineCol is a 1-based line/column pair. Col counts bytes from the line
// start, not display cells.
type LineCol struct {
	Line uint32
	Col  uint32
}
