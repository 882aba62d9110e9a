package version

import "github.com/fatih/color"

// Build metadata for the estlint CLI. The Git* and BuildDate values are
// injected with -ldflags; without them the binary reports a dev build.
var (
	// Version is the semantic version of the CLI, with each component
	// colored for terminal output.
	Version = colored("0", "1", "0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

func colored(major, minor, patch string) string {
	return color.New(color.FgYellow, color.Bold).Sprint(major) + "." +
		color.New(color.FgGreen, color.Bold).Sprint(minor) + "." +
		color.New(color.FgBlue, color.Bold).Sprint(patch)
}
