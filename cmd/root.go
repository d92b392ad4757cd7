package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthersystems/scopelisp/pkg/eval"
)

var (
	rootTrace    bool
	rootMaxDepth int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scopelisp",
	Short: "A minimal lisp with scope-exit reclamation",
	Long: `A minimal lisp interpreter.  Cells allocated while evaluating a
top-level expression are reclaimed once the expression returns unless they
remain reachable from the global environment.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// interpConfig returns the interpreter options selected by persistent flags.
func interpConfig() []eval.Config {
	return []eval.Config{
		eval.WithMaxDepth(rootMaxDepth),
		eval.WithTrace(rootTrace),
		eval.WithStderr(os.Stderr),
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Write scope reclamation statistics to stderr")
	rootCmd.PersistentFlags().IntVar(&rootMaxDepth, "max-depth", eval.DefaultMaxDepth,
		"Maximum evaluation depth (0 for no limit)")
}
