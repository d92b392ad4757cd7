package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthersystems/scopelisp/pkg/eval"
	"github.com/luthersystems/scopelisp/pkg/sexp"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		exprs, err := runReadExpressions(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		in, err := eval.New(interpConfig()...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range exprs {
			err := runProgram(in, exprs[i])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}

// runProgram evaluates each expression in source, printing values when the
// print flag is set.
func runProgram(in *eval.Interp, source runSource) error {
	prog, err := in.Read(source.name, bytes.NewReader(source.text))
	if err != nil {
		return err
	}
	return in.RunEach(prog, func(v sexp.Value) error {
		if runPrint {
			in.Format(os.Stdout, v)
			fmt.Fprintln(os.Stdout)
		}
		return nil
	})
}

type runSource struct {
	name string
	text []byte
}

func runReadExpressions(args []string) ([]runSource, error) {
	exprs := make([]runSource, len(args))
	if runExpression {
		for i := range args {
			exprs[i] = runSource{fmt.Sprintf("expr%d", i), []byte(args[i])}
		}
		return exprs, nil
	}
	for i, path := range args {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}
		exprs[i] = runSource{path, b}
	}
	return exprs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
