package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"estlint/internal/observ"
	"estlint/internal/source"
)

// listJSFiles collects every *.js file under dir, sorted for a
// deterministic result order. Sidecars are derived per source file,
// the walk never picks up *.ast.json directly.
func listJSFiles(dir string) ([]string, error) {
	var files []string
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".js") {
			files = append(files, path)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// preloadAll грузит исходники одним потоком: FileSet не потокобезопасен,
// воркеры дальше только читают. Для незагрузившегося файла заводится
// виртуальная запись, ошибка всплывёт диагностикой в воркере.
func preloadAll(fileSet *source.FileSet, files []string) (map[string]source.FileID, map[string]error) {
	ids := make(map[string]source.FileID, len(files))
	failures := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			failures[path] = err
			id = fileSet.AddVirtual(path, nil)
		}
		ids[path] = id
	}
	return ids, failures
}

// CheckDir проверяет все *.js файлы в директории параллельно. Результаты
// следуют отсортированному списку файлов независимо от порядка завершения.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []Result, error) {
	files, err := listJSFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ids, failures := preloadAll(fileSet, files)
	emitQueued(opts.Progress, files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	c := &checker{fs: fileSet, opts: opts}
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			emit(opts.Progress, Event{File: path, Stage: StageDecode, Status: StatusWorking})
			started := time.Now()

			var timer *observ.Timer
			if opts.EnableTimings {
				timer = observ.NewTimer()
			}

			// Индекс i уникален для горутины, гонки по results нет.
			res := c.run(ids[path], path, path+ASTSuffix, failures[path], timer)
			results[i] = *res

			emit(opts.Progress, Event{
				File:    path,
				Stage:   StageLint,
				Status:  resultStatus(res),
				Elapsed: time.Since(started),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func resultStatus(res *Result) Status {
	switch {
	case res.CacheHit:
		return StatusCached
	case res.Bag.HasErrors():
		return StatusError
	default:
		return StatusDone
	}
}
