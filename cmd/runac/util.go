package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/runa-lang/runa/diag"
	"github.com/runa-lang/runa/source"
)

var outputFormatsCompletion = []string{"json", "text"}

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

// colorEnabled reports whether output written to f should use ANSI color.
// The --no-color flag and the NO_COLOR environment variable win over
// terminal detection.
func colorEnabled(f *os.File) bool {
	if viper.GetBool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readSource reads one input file, with "-" standing for stdin.
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// displayName is the filename used in diagnostics for the given argument.
func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

// printDiagnostics writes the syntax errors for one file to stderr, with
// source excerpts when the text is available.
func printDiagnostics(err error, name, text string) {
	formatter := diag.NewFormatter(colorEnabled(os.Stderr))
	if out := formatter.FormatAll(err, source.NewFile(name, text)); out != "" {
		fmt.Fprint(os.Stderr, out)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func getOutputJSON(result interface{}) ([]byte, error) {
	if colorEnabled(os.Stdout) {
		return prettyjson.Marshal(result)
	}
	return json.MarshalIndent(result, "", "  ")
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !colorEnabled(os.Stderr),
	})
}
