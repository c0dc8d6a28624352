package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-es5/internal/errors"
	"github.com/cwbudde/go-es5/internal/interp"
	"github.com/cwbudde/go-es5/internal/parser"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ECMAScript file or expression",
	Long: `Execute an ECMAScript 5 program from a file or inline expression.

Examples:
  # Run a script file
  goes5 run script.js

  # Evaluate an inline expression
  goes5 run -e "print('Hello, World!');"

  # Force strict mode
  goes5 run --strict script.js

  # Report arena allocation volume after the run
  goes5 run --trace script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "report arena allocation volume after the run")
}

func readInput(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	strict := strictMode || cfg.Strict

	prog, parseErrs := parser.ParseProgram(source, filename, strict)
	if len(parseErrs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(parseErrs, true))
		return &exitError{code: 2, msg: fmt.Sprintf("parsing failed with %d error(s)", len(parseErrs))}
	}

	if dumpAST {
		fmt.Printf("%#v\n", prog)
	}

	arena := runtime.NewArena(256, cfg.MaxArenaBytes)
	ctx := interp.NewContext(interp.WithArena(arena))
	_, err = ctx.Run(prog)
	if trace {
		stats := arena.Snapshot()
		fmt.Fprintf(os.Stderr, "arena: %d small allocs (%d bytes), %d large allocs (%d bytes)\n",
			stats.SmallCount, stats.SmallBytes, stats.LargeCount, stats.LargeBytes)
		if arena.Exceeded() {
			fmt.Fprintf(os.Stderr, "arena: high-water mark of %d bytes exceeded\n", arena.MaxBytes)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, uncaughtMessage(ctx, err))
		return &exitError{code: 1, msg: "uncaught exception"}
	}
	return nil
}

// uncaughtMessage renders an uncaught thrown value via its toString.
func uncaughtMessage(ctx *interp.Context, err error) string {
	je, ok := err.(*runtime.JSError)
	if !ok {
		return err.Error()
	}
	s, terr := runtime.ToString(ctx, je.Value)
	if terr != nil {
		s = runtime.Describe(je.Value)
	}
	return "Uncaught " + s
}
