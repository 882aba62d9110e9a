package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"estlint/internal/source"
)

// shortEntry is one line of the short format, pre-resolved for sorting.
type shortEntry struct {
	path string
	line uint32
	col  uint32
	sev  string
	code string
	msg  string
}

// FormatShortDiagnostics renders diagnostics one per line as
// "severity CODE path:line:col message", sorted by position regardless
// of emission order. Golden tests and the CLI short format share this
// shape, so the layout must stay byte-stable.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rows := make([]shortEntry, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if row, ok := shortRow(fs, d.Primary, d.Severity.Label(), d.Code, d.Message); ok {
			rows = append(rows, row)
		}
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			if row, ok := shortRow(fs, note.Span, "note", d.Code, note.Msg); ok {
				rows = append(rows, row)
			}
		}
	}

	slices.SortStableFunc(rows, func(a, z shortEntry) int {
		return cmp.Or(
			strings.Compare(a.path, z.path),
			cmp.Compare(a.line, z.line),
			cmp.Compare(a.col, z.col),
			strings.Compare(a.sev, z.sev),
			strings.Compare(a.code, z.code),
			strings.Compare(a.msg, z.msg),
		)
	})

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s %s %s:%d:%d %s", r.sev, r.code, r.path, r.line, r.col, r.msg)
	}
	return strings.Join(lines, "\n")
}

// shortRow resolves a span into a sortable row. Спан на файл вне набора
// пропускается: битая диагностика не должна ронять весь отчёт.
func shortRow(fs *source.FileSet, span source.Span, sev string, code Code, msg string) (shortEntry, bool) {
	if int(span.File) >= fs.Len() {
		return shortEntry{}, false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return shortEntry{
		path: displayPath(file.FormatPath("relative", fs.BaseDir())),
		line: start.Line,
		col:  start.Col,
		sev:  sev,
		code: code.ID(),
		msg:  flattenMessage(msg),
	}, true
}

// displayPath приводит путь к прямым слешам без ведущего "./".
func displayPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// flattenMessage collapses a multi-line message onto one line.
func flattenMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
