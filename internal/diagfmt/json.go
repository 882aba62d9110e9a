package diagfmt

import (
	"io"

	"github.com/goccy/go-json"

	"estlint/internal/diag"
	"estlint/internal/source"
)

// LocationJSON anchors a finding in a file: byte offsets always, line and
// column only when JSONOpts.IncludePositions asks for them.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary span with its caption.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON is one text replacement of a suggested fix.
type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

// FixJSON is a suggested correction with its edits.
type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON is one finding. Severity uses the lowercase labels
// ("error", "warning", "info"), codes their stable IDs ("EE3003").
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Help     string       `json:"help,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON report for one file.
// Truncated counts findings that exist but were not emitted, whether the
// bag capped them or JSONOpts.Max did.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   int              `json:"truncated,omitempty"`
}

// BuildDiagnosticsOutput assembles the JSON report without serializing.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, limit),
		Truncated:   bag.Truncated() + (len(items) - limit),
	}
	for i := range limit {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic(&items[i], fs, opts))
	}
	out.Count = len(out.Diagnostics)
	return out
}

func jsonDiagnostic(d *diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	row := DiagnosticJSON{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Help:     d.Help,
		Location: jsonLocation(d.Primary, fs, opts),
	}

	if opts.IncludeNotes {
		for _, note := range d.Notes {
			row.Notes = append(row.Notes, NoteJSON{
				Message:  note.Msg,
				Location: jsonLocation(note.Span, fs, opts),
			})
		}
	}
	if opts.IncludeFixes {
		for _, fix := range d.Fixes {
			row.Fixes = append(row.Fixes, jsonFix(fix, fs, opts))
		}
	}
	return row
}

func jsonFix(fix diag.Fix, fs *source.FileSet, opts JSONOpts) FixJSON {
	out := FixJSON{Title: fix.Title}
	for _, edit := range fix.Edits {
		row := FixEditJSON{
			Location: jsonLocation(edit.Span, fs, opts),
			NewText:  edit.NewText,
		}
		if opts.IncludePreviews {
			if preview, err := previewEdit(fs, edit); err == nil {
				row.BeforeLines = preview.before
				row.AfterLines = preview.after
			}
		}
		out.Edits = append(out.Edits, row)
	}
	return out
}

func jsonLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		File:      pathOf(f, fs, opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// JSON writes the report for one bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
