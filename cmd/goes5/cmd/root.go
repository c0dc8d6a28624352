// Package cmd implements the goes5 command tree: run, repl, lex, and
// parse.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "goes5",
	Short: "ECMAScript 5 interpreter",
	Long: `goes5 is a Go implementation of an ECMAScript-262 (5th edition)
tree-walking interpreter: lexer, recursive-descent parser, and an
AST evaluator with the full completion-mode, reference-type, and
property-descriptor semantics of the language core.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&strictMode, "strict", false, "force strict mode on the outermost program")
}

var strictMode bool

// exitError carries the process exit code:
// 1 for an uncaught runtime error, 2 for a parse error.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return 1
}
