package source

import (
	"bytes"
	"path/filepath"
	"strings"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte{'\r', '\n'}
)

// stripBOM срезает UTF-8 BOM, если он есть.
func stripBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

// normalizeCRLF rewrites \r\n pairs to \n so that line handling sees a
// single newline convention. Одиночные \r остаются как есть.
func normalizeCRLF(content []byte) ([]byte, bool) {
	i := bytes.Index(content, crlf)
	if i < 0 {
		return content, false
	}
	out := make([]byte, 0, len(content)-1)
	for {
		out = append(out, content[:i]...)
		out = append(out, '\n')
		content = content[i+2:]
		i = bytes.Index(content, crlf)
		if i < 0 {
			return append(out, content...), true
		}
	}
}

// buildLineIndex collects the byte offset of every '\n' in content.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	base := 0
	for {
		k := bytes.IndexByte(content[base:], '\n')
		if k < 0 {
			return idx
		}
		idx = append(idx, uint32(base+k)) // #nosec G115 -- file sizes fit uint32, checked on Add
		base += k + 1
	}
}

// toLineCol resolves a byte offset to a 1-based line/column against the
// newline index. Сам \n относится к строке, которую он завершает.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Номер строки (0-based) равен числу переводов строки строго до off.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo) + 1, Col: off - lineStart + 1} // #nosec G115 -- index bounded by uint32 offsets
}

// normalizePath приводит путь к прямым слешам для стабильных диффов.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the normalized absolute form of p.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath rewrites p relative to baseDir for display. Paths outside
// baseDir stay absolute: ".." segments in a report read worse than a long
// path.
func RelativePath(p, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the final path element.
func BaseName(p string) string {
	return filepath.Base(p)
}
