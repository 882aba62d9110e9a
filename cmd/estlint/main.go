package main

import (
	"os"

	"fortio.org/safecast"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"estlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "estlint",
	Short: "Early-error linter for JavaScript sources",
	Long:  `estlint runs ECMAScript early-error checks over JavaScript files using externally parsed ESTree sidecars`,
}

// main registers subcommands and persistent flags, then executes the root
// command. If command execution returns an error, the process exits with
// status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("verbose", false, "log pipeline details to stderr")
	flags.Bool("timings", false, "show per-phase timing information")
	flags.Int("max-diagnostics", 100, "diagnostics kept per file, 0 = unlimited")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth ограничивает ширину сниппетов шириной терминала.
// Вне терминала и на очень широких окнах ограничения нет.
func terminalWidth() uint8 {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	width, convErr := safecast.Conv[uint8](w)
	if convErr != nil {
		return 0
	}
	return width
}

// newLogger возвращает логгер пайплайна. Без --verbose все записи уходят
// в no-op, так что горячий путь не платит за логирование.
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)
}
