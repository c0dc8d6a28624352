package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/go-es5/internal/errors"
	"github.com/cwbudde/go-es5/internal/interp"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive read-eval-print loop",
	Long: `Start an interactive session sharing one interpreter context:
variables and functions persist across inputs.

Type .exit (or Ctrl-D) to leave.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	strict := strictMode || cfg.Strict

	ctx := interp.NewContext()
	fmt.Printf("goes5 %s (type .exit to leave)\n", Version)

	scanner := bufio.NewScanner(os.Stdin)
	lineNo := 0
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ".exit" {
			return nil
		}

		v, _, err := ctx.RunSource(line, fmt.Sprintf("<repl:%d>", lineNo), strict)
		if err != nil {
			switch e := err.(type) {
			case *errors.CompilerError:
				fmt.Println(e.Format(true))
			case *runtime.JSError:
				fmt.Println(uncaughtMessage(ctx, e))
			default:
				fmt.Println(err)
			}
			continue
		}
		rendered, rerr := runtime.ToString(ctx, v)
		if rerr != nil {
			rendered = runtime.Describe(v)
		}
		fmt.Println(rendered)
	}
}
