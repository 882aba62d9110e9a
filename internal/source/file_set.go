package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every source file a run touches and resolves spans into
// line/column positions. Loading the same path twice stores a second
// version; the path index always answers with the newest one.
type FileSet struct {
	files   []File
	index   map[string]FileID
	baseDir string
}

// NewFileSet creates an empty FileSet. The base directory for relative
// display defaults to the working directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates an empty FileSet anchored at baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir задаёт базовую директорию для относительных путей.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// BaseDir returns the anchor for relative display paths, falling back to
// the working directory when none was set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add stores normalized bytes under path and returns a fresh FileID.
// The line index and content hash are computed here, once.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	// Спаны хранят uint32-смещения, файл больше 4 ГиБ адресовать нечем.
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large for span offsets: %w", path, err))
	}
	nextID, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}

	id := FileID(nextID)
	key := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[key] = id
	return id
}

// Load reads path from disk and normalizes it: UTF-16 content (detected
// by its BOM) is transcoded to UTF-8, a UTF-8 BOM is stripped, and CRLF
// pairs become LF. File.Flags records which of those actually happened.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var flags FileFlags
	content := raw
	if hasUTF16BOM(content) {
		content, err = decodeUTF16(content)
		if err != nil {
			return 0, fmt.Errorf("transcode %s: %w", path, err)
		}
		flags |= FileTranscoded
	}
	var done bool
	if content, done = stripBOM(content); done {
		flags |= FileHadBOM
	}
	if content, done = normalizeCRLF(content); done {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual stores in-memory content (stdin, tests) under a display name.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id. IDs come from this FileSet, so the lookup
// does not fail.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// Len counts stored files, all versions included.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// GetLatest returns the newest FileID stored under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// GetByPath returns the newest file stored under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts a span into start and end line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Slice returns the bytes a span covers, or nil when the span does not
// fit the file. Диагностика с битым спаном не должна ронять рендер.
func (fs *FileSet) Slice(span Span) []byte {
	f := fs.Get(span.File)
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if span.Start > span.End || span.End > size {
		return nil
	}
	return f.Content[span.Start:span.End]
}

// GetLine returns line lineNum (1-based) without its trailing newline.
// Lines past the end of the file come back empty.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	breaks, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}

	row := lineNum - 1
	if row > breaks {
		return ""
	}
	var start uint32
	if row > 0 {
		start = f.LineIdx[row-1] + 1
	}
	end := size
	if row < breaks {
		end = f.LineIdx[row]
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the file path for display. Mode is one of
// "absolute", "relative", "basename" or "auto"; baseDir anchors the
// relative form and is ignored otherwise.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// Короткие и относительные пути читаются как есть, длинные
		// абсолютные схлопываются до имени файла.
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
