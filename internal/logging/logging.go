// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/internal/config"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

// ParseLevel maps a level name to a zerolog level. Unknown names give
// InfoLevel and false.
func ParseLevel(level string) (zerolog.Level, bool) {
	l, ok := logLevelMatches[strings.ToUpper(level)]
	if !ok {
		return zerolog.InfoLevel, false
	}
	return l, true
}

func configureConsoleWriter(out io.Writer) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
	})
}

func isTerminalAttached(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}

// Setup applies the log section of cfg. Logs go to stderr so that command
// output on stdout stays machine readable. The returned function closes
// the log file, if any.
func Setup(cfg config.Log) (func(), error) {
	level, ok := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.Logger = log.Output(f)
		return func() { _ = f.Close() }, nil
	}
	if isTerminalAttached(os.Stderr) {
		configureConsoleWriter(os.Stderr)
	} else {
		log.Logger = log.Output(os.Stderr)
	}
	if !ok {
		log.Warn().Str("level", cfg.Level).Msg("unknown log level, using info")
	}
	return func() {}, nil
}

// Enabled checks if a specific logging level is enabled
func Enabled(level zerolog.Level) bool {
	return level >= zerolog.GlobalLevel()
}
