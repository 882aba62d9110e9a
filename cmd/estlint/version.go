package main

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"estlint/internal/version"
)

const versionTagline = "catch early errors before the engine does"

// buildStamp держит метаданные сборки в форме, пригодной и для pretty,
// и для json. Поля commit/message/date заполняются только по запросу.
type buildStamp struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Tagline   string `json:"tagline"`
	Commit    string `json:"git_commit,omitempty"`
	CommitMsg string `json:"git_message,omitempty"`
	BuiltAt   string `json:"build_date,omitempty"`
}

var versionOpts struct {
	format  string
	hash    bool
	message bool
	date    bool
	full    bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show estlint version and build metadata",
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.StringVar(&versionOpts.format, "format", "pretty", "output format (pretty|json)")
	f.BoolVar(&versionOpts.hash, "hash", false, "include git commit hash")
	f.BoolVar(&versionOpts.message, "message", false, "include git commit message")
	f.BoolVar(&versionOpts.date, "date", false, "include build timestamp")
	f.BoolVar(&versionOpts.full, "full", false, "include every recorded field")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	full := versionOpts.full
	stamp := newBuildStamp(versionOpts.hash || full, versionOpts.message || full, versionOpts.date || full)

	switch strings.ToLower(versionOpts.format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stamp)
	case "pretty":
		printBuildStamp(cmd.OutOrStdout(), stamp)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionOpts.format)
	}
}

// newBuildStamp собирает метаданные; незаполненные -ldflags значения
// отдаёт как "unknown", а не прячет.
func newBuildStamp(withCommit, withMessage, withDate bool) buildStamp {
	s := buildStamp{
		Tool:    "estlint",
		Version: cmp.Or(strings.TrimSpace(version.Version), "dev"),
		Tagline: versionTagline,
	}
	if withCommit {
		s.Commit = orUnknown(version.GitCommit)
	}
	if withMessage {
		s.CommitMsg = orUnknown(version.GitMessage)
	}
	if withDate {
		s.BuiltAt = orUnknown(version.BuildDate)
	}
	return s
}

func printBuildStamp(out io.Writer, s buildStamp) {
	fmt.Fprintf(out, "%s %s (%s)\n", s.Tool, s.Version, s.Tagline)

	extras := 0
	for _, row := range []struct{ label, value string }{
		{"commit", s.Commit},
		{"message", s.CommitMsg},
		{"built", s.BuiltAt},
	} {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(out, "%-8s %s\n", row.label+":", row.value)
		extras++
	}
	if extras == 0 {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build detail")
	}
}

func orUnknown(s string) string {
	return cmp.Or(strings.TrimSpace(s), "unknown")
}
