package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "runac",
	Short:   "Compiler for the Runa language",
	Version: version,
	Long: `runac parses Runa modules and translates them to Lua.

The translation erases type annotations in place, so the emitted Lua
keeps the line and column layout of the Runa source.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		processGlobalFlags()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("no-color", false, "Disable colored output")
	pf.Bool("verbose", false, "Enable verbose logging")
	viper.BindPFlag("no-color", pf.Lookup("no-color"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
