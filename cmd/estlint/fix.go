package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"estlint/internal/diag"
	"estlint/internal/driver"
	"estlint/internal/fix"
	"estlint/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.js|directory>",
	Short: "Apply available fixes to a JavaScript file or directory",
	Long:  "Run early-error checks, surface available fixes, and apply them according to the chosen strategy. The ESTree sidecar is not updated; re-run the parser after applying fixes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return err
	}

	mode := fix.ApplyModeOnce
	if applyAll {
		mode = fix.ApplyModeAll
	}
	driverOpts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Logger:         newLogger(verbose),
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	fs, diagnostics, err := collectFixable(cmd.Context(), targetPath, info.IsDir(), driverOpts)
	if err != nil {
		return err
	}
	res, applyErr := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: mode})
	return reportApplyResult(res, applyErr)
}

// collectFixable прогоняет проверку и отдаёт отсортированные диагностики:
// fix-движку нужен детерминированный порядок кандидатов.
func collectFixable(ctx context.Context, path string, isDir bool, driverOpts driver.Options) (*source.FileSet, []diag.Diagnostic, error) {
	if !isDir {
		fs := source.NewFileSetWithBase(filepath.Dir(path))
		result, err := driver.CheckFile(ctx, fs, path, driverOpts)
		if err != nil {
			return nil, nil, fmt.Errorf("fix: check failed: %w", err)
		}
		var items []diag.Diagnostic
		if result.Bag != nil {
			result.Bag.Sort()
			items = result.Bag.Items()
		}
		return fs, items, nil
	}

	fs, results, err := driver.CheckDir(ctx, path, driverOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("fix: check dir failed: %w", err)
	}
	var all []diag.Diagnostic
	for i := range results {
		if results[i].Bag == nil {
			continue
		}
		results[i].Bag.Sort()
		all = append(all, results[i].Bag.Items()...)
	}
	return fs, all, nil
}

// reportApplyResult печатает итог применения; ErrNoFixes при пустом
// результате — не ошибка, а обычное завершение.
func reportApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	out := bufio.NewWriter(os.Stdout)

	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] at %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(out, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	switch {
	case errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0:
		fmt.Fprintln(out, "No applicable fixes found.")
	case applyErr != nil:
		_ = out.Flush()
		return applyErr
	case len(res.Applied) == 0:
		fmt.Fprintln(out, "No fixes applied.")
	}
	return out.Flush()
}
