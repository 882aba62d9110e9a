package fix

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"estlint/internal/diag"
	"estlint/internal/source"
)

// ErrNoFixes reports that no diagnostic carried an applicable fix.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects how many fixes a single run applies.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in document order and stops.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every fix that does not conflict with an
	// earlier one.
	ApplyModeAll
)

// ApplyOptions configures fix selection.
type ApplyOptions struct {
	Mode ApplyMode
}

// AppliedFix describes one fix that made it to disk.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix describes a fix that was not applied, with the reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises edits written to one file.
type FileChange struct {
	Path      string
	EditCount int
}

// ApplyResult aggregates the outcome of one Apply call.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// candidate is one (diagnostic, fix) pair awaiting selection.
type candidate struct {
	diag diag.Diagnostic
	fix  diag.Fix
	id   string
	seq  int
}

// Apply selects fixes from diagnostics per opts and writes the results to
// disk. A fix lands atomically: either every edit of it applies or the
// whole fix is skipped with a reason.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     []AppliedFix{},
		Skipped:     []SkippedFix{},
		FileChanges: []FileChange{},
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	cands := collectCandidates(diagnostics, result)
	if len(cands) == 0 {
		return result, ErrNoFixes
	}

	orderCandidates(cands)
	if opts.Mode == ApplyModeOnce {
		cands = cands[:1]
	}

	p := newPatcher(fs)
	for _, cand := range cands {
		if reason := p.stage(cand); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{
				ID:     cand.id,
				Title:  cand.fix.Title,
				Reason: reason,
			})
			continue
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:          cand.id,
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: p.displayPath(cand.diag.Primary.File),
			EditCount:   len(cand.fix.Edits),
		})
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	changes, err := p.flush()
	result.FileChanges = append(result.FileChanges, changes...)
	if err != nil {
		return result, err
	}
	return result, nil
}

// collectCandidates разворачивает диагностики в пары (диагностика, fix).
// ID собирается из кода, файла, смещения и индекса — стабильный ключ
// для отчётов. Пустые fix сразу уходят в Skipped.
func collectCandidates(diagnostics []diag.Diagnostic, result *ApplyResult) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			if len(f.Edits) == 0 {
				result.Skipped = append(result.Skipped, SkippedFix{
					ID:     id,
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, id: id, seq: len(cands)})
		}
	}
	return cands
}

// orderCandidates задаёт детерминированный порядок применения: файл,
// начало, конец, затем порядок обнаружения.
func orderCandidates(cands []candidate) {
	slices.SortStableFunc(cands, func(a, z candidate) int {
		return cmp.Or(
			cmp.Compare(a.diag.Primary.File, z.diag.Primary.File),
			cmp.Compare(a.diag.Primary.Start, z.diag.Primary.Start),
			cmp.Compare(a.diag.Primary.End, z.diag.Primary.End),
			cmp.Compare(a.seq, z.seq),
		)
	})
}

// patcher накапливает правки в памяти; на диск всё уходит одним
// проходом в flush.
type patcher struct {
	fs      *source.FileSet
	base    string
	content map[source.FileID][]byte         // буферы с уже применёнными правками
	applied map[source.FileID][]diag.FixEdit // применённые правки, по возрастанию Start
	edits   map[source.FileID]int
}

func newPatcher(fs *source.FileSet) *patcher {
	return &patcher{
		fs:      fs,
		base:    fs.BaseDir(),
		content: make(map[source.FileID][]byte),
		applied: make(map[source.FileID][]diag.FixEdit),
		edits:   make(map[source.FileID]int),
	}
}

// stage applies every edit of cand to scratch copies of the target
// buffers and commits them only once the whole fix has landed. The
// returned string is empty on success, otherwise the skip reason.
func (p *patcher) stage(cand candidate) string {
	type stagedFile struct {
		content []byte
		applied []diag.FixEdit
		count   int
	}
	pending := make(map[source.FileID]stagedFile)

	for fileID, edits := range editsByFile(cand.fix.Edits) {
		file := p.fs.Get(fileID)
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if p.conflicts(fileID, edits) {
			return fmt.Sprintf("conflicts with previously applied edits in %s",
				file.FormatPath("auto", p.base))
		}

		working := slices.Clone(p.buffer(fileID, file))
		seen := slices.Clone(p.applied[fileID])

		// Правки в порядке убывания смещений: ранние не сдвигают
		// поздние внутри одного fix.
		slices.SortStableFunc(edits, func(a, z diag.FixEdit) int {
			return cmp.Or(
				cmp.Compare(z.Span.Start, a.Span.Start),
				cmp.Compare(z.Span.End, a.Span.End),
			)
		})

		for _, edit := range edits {
			start := int(edit.Span.Start) + offsetShift(seen, int(edit.Span.Start))
			end := int(edit.Span.End) + offsetShift(seen, int(edit.Span.End))
			if start < 0 || end < start || end > len(working) {
				return "edit span out of range"
			}
			working = slices.Concat(working[:start], []byte(edit.NewText), working[end:])
			seen = rememberEdit(seen, edit)
		}

		pending[fileID] = stagedFile{content: working, applied: seen, count: len(edits)}
	}

	for fileID, st := range pending {
		p.content[fileID] = st.content
		p.applied[fileID] = st.applied
		p.edits[fileID] += st.count
	}
	return ""
}

// buffer returns the current text of the file: the patched buffer if an
// earlier fix touched it, the loaded content otherwise.
func (p *patcher) buffer(fileID source.FileID, file *source.File) []byte {
	if buf, ok := p.content[fileID]; ok {
		return buf
	}
	return file.Content
}

// conflicts reports whether any of edits overlaps an edit already
// applied to the file by an earlier fix.
func (p *patcher) conflicts(fileID source.FileID, edits []diag.FixEdit) bool {
	for _, prev := range p.applied[fileID] {
		for _, next := range edits {
			if overlap(prev.Span, next.Span) {
				return true
			}
		}
	}
	return false
}

// flush записывает затронутые буферы на диск, сохраняя права файла.
func (p *patcher) flush() ([]FileChange, error) {
	changes := make([]FileChange, 0, len(p.content))
	for fileID, buf := range p.content {
		file := p.fs.Get(fileID)

		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, buf, mode); err != nil {
			return changes, fmt.Errorf("write %s: %w", file.Path, err)
		}

		changes = append(changes, FileChange{
			Path:      file.FormatPath("relative", p.base),
			EditCount: p.edits[fileID],
		})
	}
	slices.SortStableFunc(changes, func(a, z FileChange) int {
		return cmp.Compare(a.Path, z.Path)
	})
	return changes, nil
}

func (p *patcher) displayPath(fileID source.FileID) string {
	return p.fs.Get(fileID).FormatPath("auto", p.base)
}

// overlap treats spans as half-open intervals [Start, End). Two insertion
// points never collide; an insertion point collides with a non-empty span
// it falls inside of.
func overlap(a, b source.Span) bool {
	switch {
	case a.Empty() && b.Empty():
		return false
	case a.Empty():
		return b.Start <= a.Start && a.Start < b.End
	case b.Empty():
		return a.Start <= b.Start && b.Start < a.End
	default:
		return a.Start < b.End && b.Start < a.End
	}
}

func editsByFile(edits []diag.FixEdit) map[source.FileID][]diag.FixEdit {
	byFile := make(map[source.FileID][]diag.FixEdit)
	for _, e := range edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}
	return byFile
}

// offsetShift суммирует сдвиг позиции pos от уже применённых правок
// (по возрастанию Start). Правка двигает pos, только когда целиком
// лежит слева от него.
func offsetShift(applied []diag.FixEdit, pos int) int {
	shift := 0
	for _, e := range applied {
		start, end := int(e.Span.Start), int(e.Span.End)
		if start > pos {
			break
		}
		if end <= pos {
			shift += len(e.NewText) - (end - start)
		}
	}
	return shift
}

// rememberEdit вставляет правку, сохраняя порядок по (Start, End).
func rememberEdit(applied []diag.FixEdit, edit diag.FixEdit) []diag.FixEdit {
	at, _ := slices.BinarySearchFunc(applied, edit, func(a, target diag.FixEdit) int {
		return cmp.Or(
			cmp.Compare(a.Span.Start, target.Span.Start),
			cmp.Compare(a.Span.End, target.Span.End),
		)
	})
	return slices.Insert(applied, at, edit)
}
