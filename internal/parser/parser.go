// Package parser implements the ES5 recursive-descent grammar:
// directive-prologue/strict-mode detection, break/continue target
// resolution, constant folding, and ASI, producing the internal/ast tree
// the evaluator walks.
//
// Expressions use Pratt-style precedence climbing over a table; the
// statement grammar is plain recursive descent.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/errors"
	"github.com/cwbudde/go-es5/internal/lexer"
)

// Precedence levels for binary/logical operators (lowest to highest).
const (
	_ int = iota
	precLowest
	precAssign     // = += -= etc (right-associative, handled outside the table)
	precConditional // ?:
	precLogOr      // ||
	precLogAnd     // &&
	precBitOr      // |
	precBitXor     // ^
	precBitAnd     // &
	precEquality   // == != === !==
	precRelational // < > <= >= instanceof in
	precShift      // << >> >>>
	precAdditive   // + -
	precMultiplicative // * / %
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.LOGOR: precLogOr,
	lexer.LOGAND: precLogAnd,
	lexer.PIPE:  precBitOr,
	lexer.CARET: precBitXor,
	lexer.AMP:   precBitAnd,
	lexer.EQ: precEquality, lexer.NE: precEquality, lexer.SEQ: precEquality, lexer.SNE: precEquality,
	lexer.LT: precRelational, lexer.GT: precRelational, lexer.LE: precRelational, lexer.GE: precRelational,
	lexer.INSTANCEOF: precRelational, lexer.IN: precRelational,
	lexer.SHL: precShift, lexer.SHR: precShift, lexer.USHR: precShift,
	lexer.PLUS: precAdditive, lexer.MINUS: precAdditive,
	lexer.STAR: precMultiplicative, lexer.SLASH: precMultiplicative, lexer.PERCENT: precMultiplicative,
}

var assignmentOps = map[lexer.TokenType]string{
	lexer.ASSIGN: "=", lexer.PLUS_EQ: "+", lexer.MINUS_EQ: "-", lexer.STAR_EQ: "*",
	lexer.SLASH_EQ: "/", lexer.PERCENT_EQ: "%", lexer.SHL_EQ: "<<", lexer.SHR_EQ: ">>",
	lexer.USHR_EQ: ">>>", lexer.AMP_EQ: "&", lexer.PIPE_EQ: "|", lexer.CARET_EQ: "^",
}

// Parser holds all state for a single parse of one source unit. It is not
// reentrant or reusable across sources; construct a new one per Parse call.
type Parser struct {
	lex    *lexer.Lexer
	file   string
	source string

	cur lexer.Token

	strict      bool // current function/program's strict-mode flag
	inIteration int  // not written or read anywhere in the parser; always zero
	inFunction  bool

	targets []*ast.Target
	pendingLabels []string // labels seen immediately before the next statement
	atBodyTop     bool     // next statement sits directly in a function/program body

	scopes []*ast.Scope // stack of enclosing function/program scopes, innermost last

	errs []*errors.CompilerError
}

// New creates a Parser over source, identified by file for error messages.
func New(source, file string) *Parser {
	p := &Parser{lex: lexer.New(source), file: file, source: source}
	p.advanceAllowRegex()
	return p
}

// Errors returns every SyntaxError accumulated during the parse (error
// recovery lets the parser keep going after a malformed statement so a
// single run can report more than one problem).
func (p *Parser) Errors() []*errors.CompilerError { return p.errs }

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errs = append(p.errs, errors.NewCompilerError("SyntaxError", pos, fmt.Sprintf(format, args...), p.source, p.file))
}

func (p *Parser) currentScope() *ast.Scope { return p.scopes[len(p.scopes)-1] }

// advance fetches the next token in a position where a RegularExpressionLiteral
// cannot start (after an operand, a `)`, a `]`, an identifier, etc).
func (p *Parser) advance() {
	p.cur = p.lex.Next(p.strict, lexer.IdentifyReserved)
}

// advanceAllowRegex fetches the next token in a primary-expression position,
// so a `/` is scanned as REGEX rather than as the division/assign operator.
func (p *Parser) advanceAllowRegex() {
	pos, hadLT, isSlash := p.lex.PeekForRegexContext()
	if isSlash {
		p.cur = p.lex.ScanRegex(pos, hadLT)
		return
	}
	p.cur = p.lex.Next(p.strict, lexer.IdentifyReserved)
}

// identifierName extracts a property/member name from a token that may
// have been classified as a keyword rather than IDENT: ES5's IdentifierName
// production (used after `.` and as object-literal keys) accepts any
// reserved word, so the parser reads the raw lexeme instead of asking the
// lexer to reclassify it.
func identifierName(tok lexer.Token) (string, bool) {
	switch tok.Type {
	case lexer.IDENT, lexer.NULL_LIT, lexer.TRUE_LIT, lexer.FALSE_LIT:
		return tok.Literal, true
	}
	if tok.Type.IsKeyword() {
		return tok.Literal, true
	}
	return "", false
}

func (p *Parser) expect(tt lexer.TokenType, what string) bool {
	if p.cur.Type != tt {
		p.errorf(p.cur.Pos, "expected %s, got %s", what, p.cur.Type)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expectAllowRegex(tt lexer.TokenType, what string) bool {
	if p.cur.Type != tt {
		p.errorf(p.cur.Pos, "expected %s, got %s", what, p.cur.Type)
		return false
	}
	p.advanceAllowRegex()
	return true
}

// expectSemicolon implements ExpectSemicolon: succeeds on
// an explicit `;`, a preceding line terminator, a following `}`, or EOF.
func (p *Parser) expectSemicolon() {
	if p.cur.Type == lexer.SEMICOLON {
		p.advanceAllowRegex()
		return
	}
	if p.cur.Type == lexer.RBRACE || p.cur.Type == lexer.EOF || p.cur.HasLineTerminatorBefore {
		return
	}
	p.errorf(p.cur.Pos, "missing semicolon before %s", p.cur.Type)
}

// synchronize implements panic-mode error recovery: skip tokens until a
// statement boundary (`;`, `}`, or a statement-starting keyword) so one
// malformed statement doesn't cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	for p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.SEMICOLON {
			p.advanceAllowRegex()
			return
		}
		switch p.cur.Type {
		case lexer.RBRACE, lexer.VAR, lexer.FUNCTION, lexer.IF, lexer.FOR, lexer.WHILE,
			lexer.RETURN, lexer.THROW, lexer.TRY, lexer.SWITCH, lexer.BREAK, lexer.CONTINUE:
			return
		}
		p.advance()
	}
}

// ParseProgram parses a complete top-level program.
// forceStrict seeds strict mode before the directive prologue is scanned,
// matching the CLI's --strict flag.
func ParseProgram(source, file string, forceStrict bool) (*ast.Program, []*errors.CompilerError) {
	p := New(source, file)
	p.strict = forceStrict
	prog := ast.NewProgram(p.cur.Pos)
	prog.Scope = ast.NewScope(nil)
	p.scopes = append(p.scopes, prog.Scope)

	prog.Body, prog.Strict = p.parseStatementListWithDirectives()
	if p.cur.Type != lexer.EOF {
		p.errorf(p.cur.Pos, "unexpected token %s", p.cur.Type)
	}
	return prog, p.errs
}
