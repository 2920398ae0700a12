package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/runa-lang/runa"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Parse Runa files and report syntax errors",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := 0
		for _, path := range args {
			text, err := readSource(path)
			if err != nil {
				fatal(err)
			}
			name := displayName(path)
			log.Debug().Str("path", name).Int("bytes", len(text)).Msg("checking")
			if _, err := runa.Parse(text, runa.WithFilename(name)); err != nil {
				printDiagnostics(err, name, text)
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
