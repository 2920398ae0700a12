package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/runa-lang/runa"
)

var emitOutputPath string

var emitCmd = &cobra.Command{
	Use:   "emit FILE",
	Short: "Translate a Runa file to Lua",
	Long: `Emit translates one Runa module to Lua by erasing its type
annotations. The output has the same length and line layout as the
input, so Lua line numbers point back at the Runa source.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readSource(args[0])
		if err != nil {
			fatal(err)
		}
		name := displayName(args[0])
		lua, err := runa.Translate(text, runa.WithFilename(name))
		if err != nil {
			printDiagnostics(err, name, text)
			os.Exit(1)
		}
		if emitOutputPath == "" {
			fmt.Print(lua)
			return
		}
		if err := os.WriteFile(emitOutputPath, []byte(lua), 0o644); err != nil {
			fatal(err)
		}
		log.Debug().Str("path", emitOutputPath).Int("bytes", len(lua)).Msg("wrote output")
	},
}

func init() {
	emitCmd.Flags().StringVarP(&emitOutputPath, "out", "o", "", "Write the Lua output to this file")
	rootCmd.AddCommand(emitCmd)
}
