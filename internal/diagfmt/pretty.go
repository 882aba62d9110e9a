package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"estlint/internal/diag"
	"estlint/internal/source"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	infoStyle    = color.New(color.FgCyan, color.Bold)
	codeStyle    = color.New(color.Bold)
	gutterStyle  = color.New(color.FgBlue)
	caretStyle   = color.New(color.FgRed, color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts)
	}
}

// Short prints one line per diagnostic, grep-friendly.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	items := bag.Items()
	for i := range items {
		d := &items[i]
		file := fs.Get(d.Primary.File)
		pos, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pathOf(file, fs, mode), pos.Line, pos.Col,
			d.Severity.String(), d.Code.ID(), d.Message)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		pathOf(file, fs, opts.PathMode), start.Line, start.Col,
		paint(severityStyle(d.Severity), opts.Color, d.Severity.String()),
		paint(codeStyle, opts.Color, d.Code.ID()),
		d.Message)

	writeSnippet(w, file, start, end, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteFile := fs.Get(note.Span.File)
			pos, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				pathOf(noteFile, fs, opts.PathMode), pos.Line, pos.Col, note.Msg)
		}
	}
	if d.Help != "" {
		fmt.Fprintf(w, "  help: %s\n", d.Help)
	}
	if opts.ShowFixes {
		for i := range d.Fixes {
			writeFix(w, &d.Fixes[i], i, fs, opts)
		}
	}
}

// writeSnippet prints the primary line plus opts.Context surrounding
// lines, with a caret row under the span.
func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts) {
	if len(file.Content) == 0 {
		return
	}
	ctx := int(opts.Context)
	if ctx < 0 {
		ctx = 0
	}
	lineCount := len(file.LineIdx) + 1
	first := max(int(start.Line)-ctx, 1)
	last := min(int(start.Line)+ctx, lineCount)

	gutter := len(strconv.Itoa(last))
	for n := first; n <= last; n++ {
		lineNum, err := safecast.Conv[uint32](n)
		if err != nil {
			return
		}
		text := file.GetLine(lineNum)
		fmt.Fprintf(w, "  %s %s\n",
			paint(gutterStyle, opts.Color, fmt.Sprintf("%*d |", gutter, n)),
			renderLine(text, opts.Width))
		if lineNum == start.Line {
			under := underline(text, start, end, opts.Width)
			fmt.Fprintf(w, "  %s %s\n",
				paint(gutterStyle, opts.Color, fmt.Sprintf("%*s |", gutter, "")),
				paint(caretStyle, opts.Color, under))
		}
	}
}

func writeFix(w io.Writer, f *diag.Fix, idx int, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "  fix #%d: %s\n", idx+1, f.Title)
	for _, edit := range f.Edits {
		editFile := fs.Get(edit.Span.File)
		pos, _ := fs.Resolve(edit.Span)
		fmt.Fprintf(w, "    edit %s:%d:%d: apply=%q\n",
			pathOf(editFile, fs, opts.PathMode), pos.Line, pos.Col, edit.NewText)
		if opts.ShowPreview {
			preview, err := previewEdit(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, line := range preview.before {
				fmt.Fprintf(w, "    - %s\n", line)
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "    + %s\n", line)
			}
		}
	}
}

// underline builds the caret row for the span's first line. Widths are
// display columns via runewidth, чтобы многобайтовый текст не сдвигал
// подчёркивание.
func underline(lineText string, start, end source.LineCol, width uint8) string {
	col := int(start.Col) - 1
	if col < 0 {
		col = 0
	}
	if col > len(lineText) {
		col = len(lineText)
	}
	spanEnd := len(lineText)
	if end.Line == start.Line {
		if e := int(end.Col) - 1; e >= col && e <= len(lineText) {
			spanEnd = e
		}
	}
	marked := runewidth.StringWidth(expandTabs(lineText[col:spanEnd]))
	if marked < 1 {
		marked = 1
	}
	under := strings.Repeat(" ", runewidth.StringWidth(expandTabs(lineText[:col]))) +
		"^" + strings.Repeat("~", marked-1)
	if width > 0 && len(under) > int(width) {
		under = under[:width]
	}
	return under
}

func renderLine(s string, width uint8) string {
	s = expandTabs(s)
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	if int(width) <= 3 {
		return runewidth.Truncate(s, int(width), "")
	}
	return runewidth.Truncate(s, int(width)-3, "...")
}

// Табы печатаются как один пробел, иначе колонка каретки зависит от
// настроек терминала.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}

func severityStyle(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorStyle
	case diag.SevWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

func paint(style *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return style.Sprint(s)
}

func pathOf(f *source.File, fs *source.FileSet, mode PathMode) string {
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}
