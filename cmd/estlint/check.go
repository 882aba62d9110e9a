package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"estlint/internal/diag"
	"estlint/internal/diagfmt"
	"estlint/internal/driver"
	"estlint/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.js|directory>",
	Short: "Run early-error checks on a JavaScript file or directory",
	Long:  `Run early-error checks against a JavaScript file or all *.js files within a directory. Every source file needs an ESTree sidecar (<file>.js.ast.json) produced by an external parser`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command used by runCheck.
// It configures output format, sidecar override, concurrency, note and
// suggestion inclusion, path rendering and the progress UI.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("ast", "", "path to the ESTree sidecar (single file only)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show how fixes would change the code")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("context", 2, "lines of context around each snippet")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for check results")
	checkCmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
}

// runCheck executes the "check" command: it parses command flags, merges
// estlint.toml defaults, runs the checks for the provided path (single file
// or directory), renders the results in the chosen output format, and exits
// with a non-zero status when any diagnostics contain errors.
func runCheck(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	astOverride, err := cmd.Flags().GetString("ast")
	if err != nil {
		return fmt.Errorf("failed to get ast flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}

	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	if contextLines < 0 {
		return fmt.Errorf("--context must be non-negative")
	}
	snippetContext, err := safecast.Conv[int8](contextLines)
	if err != nil {
		return fmt.Errorf("--context value too large: %d", contextLines)
	}

	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() && astOverride != "" {
		return fmt.Errorf("--ast is only supported for single files")
	}

	// Манифест проекта задаёт умолчания для флагов, которые не были
	// указаны явно. Флаг всегда сильнее манифеста.
	startDir := filePath
	if !st.IsDir() {
		startDir = filepath.Dir(filePath)
	}
	manifest, _, err := loadLintManifest(startDir)
	if err != nil {
		return err
	}
	if manifest != nil {
		if !cmd.Flags().Changed("format") && manifest.Config.Output.Format != "" {
			format = manifest.Config.Output.Format
		}
		if !cmd.Root().PersistentFlags().Changed("color") && manifest.Config.Output.Color != "" {
			colorMode = manifest.Config.Output.Color
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.Config.Lint.MaxDiagnostics > 0 {
			maxDiagnostics = manifest.Config.Lint.MaxDiagnostics
		}
		if !cmd.Flags().Changed("disk-cache") && manifest.Config.Cache.Enabled {
			enableDiskCache = true
		}
	}

	switch format {
	case "pretty", "short", "json":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	pathMode := diagfmt.PathModeAuto
	if manifest != nil {
		pathMode = manifestPathMode(manifest.Config.Output.Paths)
	}
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := suggest || preview
	useColor := colorMode == "on" || (colorMode == "auto" && isTerminal(os.Stdout))

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		ASTPath:        astOverride,
		Logger:         newLogger(verbose),
		EnableTimings:  showTimings,
	}
	if enableDiskCache {
		cache, cacheErr := openConfiguredCache(manifest)
		if cacheErr != nil {
			return fmt.Errorf("failed to open disk cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	prettyOpts := diagfmt.PrettyOpts{
		Color:       useColor,
		Context:     snippetContext,
		PathMode:    pathMode,
		Width:       terminalWidth(),
		ShowNotes:   withNotes,
		ShowFixes:   showFixes,
		ShowPreview: preview,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
		IncludeFixes:     showFixes,
		IncludePreviews:  preview,
	}

	runFile := func() (int, error) {
		fs := source.NewFileSetWithBase(filepath.Dir(filePath))
		result, err := driver.CheckFile(cmd.Context(), fs, filePath, opts)
		if err != nil {
			return 0, fmt.Errorf("check failed: %w", err)
		}

		exit := 0
		if result.Bag.HasErrors() {
			exit = 1
		}

		switch format {
		case "pretty":
			diagfmt.Pretty(os.Stdout, result.Bag, fs, prettyOpts)
			if !quiet {
				printProblemSummary(os.Stdout, result.Bag)
			}
		case "short":
			diagfmt.Short(os.Stdout, result.Bag, fs, pathMode)
		case "json":
			if err := diagfmt.JSON(os.Stdout, result.Bag, fs, jsonOpts); err != nil {
				return 0, fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}

		if showTimings && result.Timing != nil {
			printTimings(os.Stderr, *result.Timing)
		}
		return exit, nil
	}

	runDir := func() (int, error) {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return 0, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if manifest != nil && !cmd.Flags().Changed("jobs") && manifest.Config.Lint.Jobs > 0 {
			jobs = manifest.Config.Lint.Jobs
		}
		opts.Jobs = jobs

		var (
			fs      *source.FileSet
			results []driver.Result
		)
		// TUI осмыслен только для pretty-вывода в терминале: короткий и
		// json-форматы идут в пайпы и не должны мешаться с анимацией.
		if format == "pretty" && !quiet && shouldUseTUI(mode) {
			fs, results, err = runCheckDirWithUI(cmd.Context(), "estlint check", filePath, opts)
		} else {
			fs, results, err = driver.CheckDir(cmd.Context(), filePath, opts)
		}
		if err != nil {
			return 0, fmt.Errorf("check failed: %w", err)
		}

		exit := 0
		for i := range results {
			if results[i].Bag.HasErrors() {
				exit = 1
				break
			}
		}

		switch format {
		case "short":
			all := make([]diag.Diagnostic, 0, len(results))
			for i := range results {
				all = append(all, results[i].Bag.Items()...)
			}
			output := diag.FormatShortDiagnostics(all, fs, withNotes)
			if output != "" {
				fmt.Fprintln(os.Stdout, output)
			}
		case "pretty":
			printed := 0
			for i := range results {
				r := &results[i]
				// С --quiet файлы без находок не печатаются вовсе.
				if quiet && r.Bag.Len() == 0 {
					continue
				}
				if printed > 0 {
					fmt.Fprintln(os.Stdout)
				}
				printed++
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath(r, fs, pathMode))
				diagfmt.Pretty(os.Stdout, r.Bag, fs, prettyOpts)
			}
			if !quiet {
				bags := make([]*diag.Bag, 0, len(results))
				for i := range results {
					bags = append(bags, results[i].Bag)
				}
				printProblemSummary(os.Stdout, bags...)
			}
		case "json":
			output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
			for i := range results {
				r := &results[i]
				output[displayPath(r, fs, pathMode)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts)
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
			}
		}

		if showTimings {
			printTimings(os.Stderr, mergedTimings(results))
		}
		return exit, nil
	}

	var (
		exitCode  int
		resultErr error
	)
	if !st.IsDir() {
		exitCode, resultErr = runFile()
	} else {
		exitCode, resultErr = runDir()
	}

	if resultErr != nil {
		return resultErr
	}
	if exitCode != 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// openConfiguredCache открывает кэш по настройкам манифеста либо в
// стандартном месте (XDG).
func openConfiguredCache(manifest *lintManifest) (*driver.DiskCache, error) {
	if dir := cacheDirFor(manifest); dir != "" {
		return driver.OpenDiskCacheDir(dir)
	}
	return driver.OpenDiskCache("estlint")
}

// displayPath форматирует путь результата для заголовков и ключей вывода.
// Драйвер кладёт файл в FileSet даже при ошибке чтения, так что FileID
// валиден всегда.
func displayPath(r *driver.Result, fs *source.FileSet, mode diagfmt.PathMode) string {
	file := fs.Get(r.FileID)
	return file.FormatPath(mode.String(), fs.BaseDir())
}

// printProblemSummary выводит итог по всем файлам: счётчики по уровням и
// сколько находок не попало в вывод из-за --max-diagnostics.
func printProblemSummary(w io.Writer, bags ...*diag.Bag) {
	var errs, warns, infos, dropped int
	for _, bag := range bags {
		e, wn, in := bag.Counts()
		errs += e
		warns += wn
		infos += in
		dropped += bag.Truncated()
	}
	total := errs + warns + infos
	if total == 0 && dropped == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%s, %s", plural(total, "problem"), plural(errs, "error"), plural(warns, "warning"))
	if infos > 0 {
		fmt.Fprintf(w, ", %s", plural(infos, "info"))
	}
	fmt.Fprintln(w, ")")
	if dropped > 0 {
		fmt.Fprintf(w, "%s hidden by --max-diagnostics\n", plural(dropped, "more finding"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
