package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-es5/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	showPos  bool
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an ECMAScript file or expression",
	Long: `Tokenize (lex) an ECMAScript program and print the resulting tokens.

Useful for debugging the lexer and understanding how source code is
tokenized.

Examples:
  # Tokenize a script file
  goes5 lex script.js

  # Tokenize an inline expression
  goes5 lex -e "var x = 42;"

  # Show token types and positions
  goes5 lex --show-type --show-pos script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	l := lexer.New(source)
	for {
		tok := l.Next(strictMode, lexer.IdentifyReserved)
		if tok.Type == lexer.EOF {
			break
		}
		line := tok.Literal
		if showType {
			line = fmt.Sprintf("%-12s %s", tok.Type, tok.Literal)
		}
		if showPos {
			line = fmt.Sprintf("%s:%d:%d: %s", filename, tok.Pos.Line, tok.Pos.Column, line)
		}
		fmt.Println(line)
		if tok.Type == lexer.ILLEGAL {
			break
		}
	}
	if lexErr := l.Err(); lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Error())
		return &exitError{code: 2, msg: "tokenization failed"}
	}
	return nil
}
