package driver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/estree"
	"estlint/internal/lint"
	"estlint/internal/observ"
	"estlint/internal/rules/earlyerror"
	"estlint/internal/source"
)

// Options содержит опции для проверки
type Options struct {
	MaxDiagnostics int
	// ASTPath overrides sidecar discovery for single-file runs.
	ASTPath string
	// Jobs caps parallelism in CheckDir; <=0 means GOMAXPROCS.
	Jobs          int
	Cache         *DiskCache // nil disables the disk cache
	Logger        zerolog.Logger
	Progress      ProgressSink
	EnableTimings bool
}

// Result is the outcome of checking one source file.
type Result struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Tree     *ast.Tree // nil when decode failed or the cache was hit
	CacheHit bool
	Timing   *observ.Report
}

func defaultRules() []lint.Rule {
	return []lint.Rule{earlyerror.New()}
}

// CheckFile запускает проверку одного файла: загрузка исходника, поиск
// sidecar-дерева, декодирование, правила. Ошибки ввода-вывода и декодирования
// становятся диагностиками в Bag; error остаётся за отменой контекста.
func CheckFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	srcPath, astPath := splitSidecar(path, opts.ASTPath)

	// CheckDir отбирает *.js на обходе; для одиночного пути фильтр живёт здесь.
	if !strings.HasSuffix(srcPath, ".js") {
		fileID := fs.AddVirtual(srcPath, nil)
		bag := diag.NewBag(opts.MaxDiagnostics)
		bag.Add(diag.New(diag.SevError, diag.IONotAFile,
			source.Span{File: fileID},
			"not a JavaScript file: "+srcPath).
			WithHelp("estlint checks .js files and their .ast.json sidecars"))
		return finish(&Result{Path: srcPath, FileID: fileID, Bag: bag}, timer), nil
	}

	loadIdx := timerBegin(timer, "load_source")
	fileID, loadErr := fs.Load(srcPath)
	timerEnd(timer, loadIdx, "")
	if loadErr != nil {
		// Виртуальный файл даёт диагностике якорь с настоящим путём.
		fileID = fs.AddVirtual(srcPath, nil)
	}

	c := &checker{fs: fs, opts: opts}
	return c.run(fileID, srcPath, astPath, loadErr, timer), nil
}

// checker разделяет хвост пайплайна между CheckFile и воркерами CheckDir.
// К моменту run FileSet уже не мутируется.
type checker struct {
	fs   *source.FileSet
	opts Options
}

func (c *checker) run(fileID source.FileID, srcPath, astPath string, loadErr error, timer *observ.Timer) *Result {
	bag := diag.NewBag(c.opts.MaxDiagnostics)
	res := &Result{Path: srcPath, FileID: fileID, Bag: bag}

	if loadErr != nil {
		bag.Add(diag.New(diag.SevError, diag.IOReadFailed,
			source.Span{File: fileID},
			"cannot read source file: "+loadErr.Error()))
		return finish(res, timer)
	}

	file := c.fs.Get(fileID)
	logger := c.opts.Logger.With().Str("file", srcPath).Logger()
	if file.Normalized() {
		logger.Debug().Msg("source normalized on load; sidecar offsets must match the normalized text")
	}

	readIdx := timerBegin(timer, "load_ast")
	astData, err := os.ReadFile(astPath) // #nosec G304 -- path is derived from user input
	timerEnd(timer, readIdx, "")
	if err != nil {
		bag.Add(diag.New(diag.SevError, diag.IOMissingAST,
			source.Span{File: fileID},
			"cannot read syntax tree: "+err.Error()).
			WithHelp("generate it with: acorn --ecma2025 "+srcPath+" > "+astPath))
		return finish(res, timer)
	}

	var key, astHash Digest
	if c.opts.Cache != nil {
		astHash = sha256.Sum256(astData)
		key = cacheKey(file.Hash, astHash)
		var payload DiskPayload
		if ok, cacheErr := c.opts.Cache.Get(key, &payload); cacheErr != nil {
			logger.Debug().Err(cacheErr).Msg("disk cache read failed")
		} else if ok && payload.Schema == diskCacheSchemaVersion {
			replayDiagnostics(bag, fileID, payload.Diagnostics)
			bag.Sort()
			res.CacheHit = true
			logger.Debug().Int("diags", bag.Len()).Msg("disk cache hit")
			return finish(res, timer)
		}
	}

	decodeIdx := timerBegin(timer, "decode")
	tree, decodeErr := estree.Load(file, astData)
	decodeNote := ""
	if timer != nil && tree != nil {
		decodeNote = fmt.Sprintf("nodes=%d", tree.Len())
	}
	timerEnd(timer, decodeIdx, decodeNote)
	if decodeErr != nil {
		bag.Add(diag.New(diag.SevError, astErrorCode(decodeErr),
			source.Span{File: fileID},
			"cannot decode syntax tree: "+decodeErr.Error()))
		bag.Sort()
		// Результат детерминирован по (исходник, дерево) — кэшируем и ошибку.
		c.store(key, file.Hash, astHash, bag, logger)
		return finish(res, timer)
	}
	res.Tree = tree

	lintIdx := timerBegin(timer, "lint")
	lint.NewRunner(defaultRules()...).Run(tree, file, &diag.BagReporter{Bag: bag})
	lintNote := ""
	if timer != nil {
		lintNote = fmt.Sprintf("diags=%d", bag.Len())
	}
	timerEnd(timer, lintIdx, lintNote)

	bag.Sort()
	c.store(key, file.Hash, astHash, bag, logger)
	logger.Debug().Int("diags", bag.Len()).Msg("check complete")
	return finish(res, timer)
}

func (c *checker) store(key Digest, srcHash, astHash Digest, bag *diag.Bag, logger zerolog.Logger) {
	if c.opts.Cache == nil {
		return
	}
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		SourceHash:  srcHash,
		ASTHash:     astHash,
		Diagnostics: snapshotDiagnostics(bag.Items()),
	}
	if err := c.opts.Cache.Put(key, payload); err != nil {
		logger.Debug().Err(err).Msg("disk cache write failed")
	}
}

// astErrorCode подбирает код диагностики по ошибке декодера.
func astErrorCode(err error) diag.Code {
	switch {
	case errors.Is(err, estree.ErrInvalidJSON):
		return diag.ASTInvalidJSON
	case errors.Is(err, estree.ErrMissingField):
		return diag.ASTMissingField
	case errors.Is(err, estree.ErrSpanOutOfRange):
		return diag.ASTSpanOutOfRange
	}
	return diag.ASTBadPayload
}

func finish(res *Result, timer *observ.Timer) *Result {
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
	return res
}

func timerBegin(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func timerEnd(t *observ.Timer, idx int, note string) {
	if t == nil || idx < 0 {
		return
	}
	t.End(idx, note)
}
