package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/errors"
	"github.com/cwbudde/go-es5/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an ECMAScript file and dump the AST",
	Long: `Parse an ECMAScript program and print the resulting AST as an
indented tree.

Examples:
  # Parse a script file
  goes5 parse script.js

  # Parse an inline expression
  goes5 parse -e "function f(a) { return a + 1; }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	prog, parseErrs := parser.ParseProgram(source, filename, strictMode)
	if len(parseErrs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(parseErrs, true))
		return &exitError{code: 2, msg: fmt.Sprintf("parsing failed with %d error(s)", len(parseErrs))}
	}

	fmt.Printf("Program (strict=%t)\n", prog.Strict)
	for _, stmt := range prog.Body {
		dumpNode(stmt, 1)
	}
	return nil
}

// dumpNode prints a node's dynamic type and position, then recurses into
// the statement/expression children the debugging dump cares about.
func dumpNode(n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	pos := n.Pos()
	fmt.Printf("%s%s @%d:%d\n", indent, nodeLabel(n), pos.Line, pos.Column)
	for _, child := range nodeChildren(n) {
		dumpNode(child, depth+1)
	}
}

func nodeLabel(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Identifier:
		return "Identifier(" + t.Name + ")"
	case *ast.NumberLiteral:
		return fmt.Sprintf("Number(%v)", t.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("String(%q)", t.Value)
	case *ast.BooleanLiteral:
		return fmt.Sprintf("Boolean(%t)", t.Value)
	case *ast.BinaryExpression:
		return "Binary(" + string(t.Operator) + ")"
	case *ast.LogicalExpression:
		return "Logical(" + string(t.Operator) + ")"
	case *ast.UnaryExpression:
		return "Unary(" + string(t.Operator) + ")"
	case *ast.AssignmentExpression:
		return "Assignment(" + t.Operator + ")"
	case *ast.FunctionLiteral:
		return "Function(" + t.Name + ")"
	case *ast.LabeledStatement:
		return "Labeled(" + t.Label + ")"
	default:
		name := fmt.Sprintf("%T", n)
		return strings.TrimPrefix(name, "*ast.")
	}
}

func nodeChildren(n ast.Node) []ast.Node {
	var out []ast.Node
	add := func(nodes ...ast.Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch t := n.(type) {
	case *ast.BlockStatement:
		for _, s := range t.Body {
			add(s)
		}
	case *ast.VariableStatement:
		for _, d := range t.Declarations {
			if d.Init != nil {
				add(d.Init)
			}
		}
	case *ast.ExpressionStatement:
		add(t.Expression)
	case *ast.IfStatement:
		add(t.Test, t.Consequent)
		if t.Alternate != nil {
			add(t.Alternate)
		}
	case *ast.WhileStatement:
		add(t.Test, t.Body)
	case *ast.DoWhileStatement:
		add(t.Body, t.Test)
	case *ast.ForStatement:
		add(t.Init, t.Test, t.Update, t.Body)
	case *ast.ForInStatement:
		add(t.Target, t.Object, t.Body)
	case *ast.ReturnStatement:
		add(t.Argument)
	case *ast.WithStatement:
		add(t.Object, t.Body)
	case *ast.SwitchStatement:
		add(t.Discriminant)
		for _, cs := range t.Cases {
			add(cs.Test)
			for _, s := range cs.Body {
				add(s)
			}
		}
	case *ast.ThrowStatement:
		add(t.Argument)
	case *ast.TryStatement:
		add(t.Block)
		if t.Catch != nil {
			add(t.Catch.Body)
		}
		if t.Finally != nil {
			add(t.Finally)
		}
	case *ast.LabeledStatement:
		add(t.Body)
	case *ast.FunctionDeclaration:
		add(t.Function)
	case *ast.FunctionLiteral:
		for _, s := range t.Body {
			add(s)
		}
	case *ast.BinaryExpression:
		add(t.Left, t.Right)
	case *ast.LogicalExpression:
		add(t.Left, t.Right)
	case *ast.UnaryExpression:
		add(t.Operand)
	case *ast.UpdateExpression:
		add(t.Operand)
	case *ast.AssignmentExpression:
		add(t.Target, t.Value)
	case *ast.ConditionalExpression:
		add(t.Test, t.Consequent, t.Alternate)
	case *ast.CallExpression:
		add(t.Callee)
		for _, a := range t.Arguments {
			add(a)
		}
	case *ast.NewExpression:
		add(t.Callee)
		for _, a := range t.Arguments {
			add(a)
		}
	case *ast.MemberExpression:
		add(t.Object, t.Property)
	case *ast.SequenceExpression:
		for _, e := range t.Expressions {
			add(e)
		}
	case *ast.ArrayLiteral:
		for _, e := range t.Elements {
			if e != nil {
				add(e)
			}
		}
	case *ast.ObjectLiteral:
		for _, p := range t.Properties {
			add(p.Key, p.Value)
		}
	}
	return out
}
