package parser

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/lexer"
)

// parseStatementListWithDirectives parses a Program or FunctionBody
// StatementList, recognizing the directive prologue: the
// maximal leading run of ExpressionStatements whose expression is a bare,
// non-escaped StringLiteral. As soon as a "use strict" directive is seen,
// p.strict flips on for the remainder of this body (including any later
// statements in the same prologue) -- tokens already fetched before that
// point keep whatever classification they got under the old mode, a
// one-token lag accepted here as a parsing simplification.
func (p *Parser) parseStatementListWithDirectives() ([]ast.Statement, bool) {
	startedStrict := p.strict
	var body []ast.Statement
	inPrologue := true

	for p.cur.Type != lexer.EOF && p.cur.Type != lexer.RBRACE {
		p.atBodyTop = true
		stmt := p.parseStatement()
		if inPrologue {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				if sl, ok := es.Expression.(*ast.StringLiteral); ok && sl.IsDirectivable() {
					es.SetDirective(sl.Value)
					if sl.Value == "use strict" {
						p.strict = true
					}
				} else {
					inPrologue = false
				}
			} else {
				inPrologue = false
			}
		}
		body = append(body, stmt)
	}
	return body, p.strict && !startedStrict || startedStrict
}

// parseStatement dispatches on the current token to one of the Statement
// productions, with panic-mode recovery on malformed input.
func (p *Parser) parseStatement() ast.Statement {
	atTop := p.atBodyTop
	p.atBodyTop = false
	switch p.cur.Type {
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.VAR:
		return p.parseVariableStatement()
	case lexer.SEMICOLON:
		pos := p.cur.Pos
		p.advanceAllowRegex()
		return ast.NewEmptyStatement(pos)
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.WITH:
		return p.parseWithStatement()
	case lexer.SWITCH:
		return p.parseSwitchStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.DEBUGGER:
		pos := p.cur.Pos
		p.advance()
		p.expectSemicolon()
		return ast.NewDebuggerStatement(pos)
	case lexer.FUNCTION:
		// A function declaration in statement position is tolerated as a
		// FunctionStatement outside strict mode only.
		if p.strict && !atTop {
			p.errorf(p.cur.Pos, "function declarations are not allowed in statement position in strict mode")
		}
		return p.parseFunctionDeclaration()
	case lexer.IDENT:
		if p.looksLikeLabel() {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	pos := p.cur.Pos
	p.advanceAllowRegex() // consume '{'
	var body []ast.Statement
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		body = append(body, p.parseStatement())
	}
	p.expectAllowRegex(lexer.RBRACE, "'}'")
	return ast.NewBlockStatement(pos, body)
}

func (p *Parser) parseVariableStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'var'
	decls := p.parseVariableDeclarationList()
	p.expectSemicolon()
	return ast.NewVariableStatement(pos, decls)
}

func (p *Parser) parseVariableDeclarationList() []ast.VariableDeclarator {
	var decls []ast.VariableDeclarator
	for {
		decls = append(decls, p.parseVariableDeclarator())
		if p.cur.Type == lexer.COMMA {
			p.advanceAllowRegex()
			continue
		}
		break
	}
	return decls
}

func (p *Parser) parseVariableDeclarator() ast.VariableDeclarator {
	if p.cur.Type != lexer.IDENT {
		p.errorf(p.cur.Pos, "expected identifier in variable declaration, got %s", p.cur.Type)
		p.advance()
		return ast.VariableDeclarator{}
	}
	name := p.cur.Literal
	if p.strict && (name == "eval" || name == "arguments") {
		p.errorf(p.cur.Pos, "variable name %q is not allowed in strict mode", name)
	}
	p.currentScope().DeclareVar(name)
	p.advance()

	var init ast.Expression
	if p.cur.Type == lexer.ASSIGN {
		p.advanceAllowRegex()
		init = p.parseAssignmentExpression()
	}
	return ast.VariableDeclarator{Name: name, Init: init}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpression()
	p.expectSemicolon()
	return ast.NewExpressionStatement(pos, expr)
}

func (p *Parser) parseIfStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'if'
	p.expectAllowRegex(lexer.LPAREN, "'('")
	test := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	cons := p.parseStatement()
	var alt ast.Statement
	if p.cur.Type == lexer.ELSE {
		p.advanceAllowRegex()
		alt = p.parseStatement()
	}
	return ast.NewIfStatement(pos, test, cons, alt)
}

// pushTarget/popTarget manage the break/continue Target stack
//: one Target per breakable statement, consulted when the
// parser encounters a (possibly labeled) break or continue.
func (p *Parser) pushTarget(kind ast.TargetKind, labels []string) *ast.Target {
	t := &ast.Target{Kind: kind, Labels: labels}
	p.targets = append(p.targets, t)
	return t
}

func (p *Parser) popTarget() {
	p.targets = p.targets[:len(p.targets)-1]
}

func (p *Parser) parseWhileStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'while'
	p.expectAllowRegex(lexer.LPAREN, "'('")
	test := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")

	stmt := ast.NewWhileStatement(pos, test, nil)
	target := p.pushTarget(ast.TargetIteration, p.takePendingLabels())
	target.Node = stmt
	stmt.Body = p.parseStatement()
	p.popTarget()
	return stmt
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'do'

	stmt := ast.NewDoWhileStatement(pos, nil, nil)
	target := p.pushTarget(ast.TargetIteration, p.takePendingLabels())
	target.Node = stmt
	stmt.Body = p.parseStatement()
	p.popTarget()

	if !p.expect(lexer.WHILE, "'while'") {
		return stmt
	}
	p.expectAllowRegex(lexer.LPAREN, "'('")
	stmt.Test = p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	// ASI after `do...while(...)` always succeeds even without a
	// terminator.
	if p.cur.Type == lexer.SEMICOLON {
		p.advanceAllowRegex()
	}
	return stmt
}

// parseForStatement disambiguates ForStatement from ForInStatement after
// consuming the optional `var` and the initializer/LHS expression (12.6).
func (p *Parser) parseForStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'for'
	p.expectAllowRegex(lexer.LPAREN, "'('")

	if p.cur.Type == lexer.VAR {
		return p.parseForVarOrForInVar(pos)
	}

	if p.cur.Type == lexer.SEMICOLON {
		return p.parseForClassic(pos, nil)
	}

	init := p.parseExpressionNoIn()
	if p.cur.Type == lexer.IN {
		p.advanceAllowRegex()
		obj := p.parseExpression()
		p.expect(lexer.RPAREN, "')'")
		stmt := ast.NewForInStatement(pos, obj, nil)
		stmt.Target = init
		target := p.pushTarget(ast.TargetIteration, p.takePendingLabels())
		target.Node = stmt
		stmt.Body = p.parseStatement()
		p.popTarget()
		return stmt
	}
	return p.parseForClassic(pos, init)
}

func (p *Parser) parseForVarOrForInVar(pos lexer.Position) ast.Statement {
	p.advance() // consume 'var'
	first := p.parseVariableDeclarator()

	if p.cur.Type == lexer.IN && first.Init == nil {
		p.advanceAllowRegex()
		obj := p.parseExpression()
		p.expect(lexer.RPAREN, "')'")
		stmt := ast.NewForInStatement(pos, obj, nil)
		stmt.Declare = true
		stmt.VarName = first.Name
		target := p.pushTarget(ast.TargetIteration, p.takePendingLabels())
		target.Node = stmt
		stmt.Body = p.parseStatement()
		p.popTarget()
		return stmt
	}

	decls := []ast.VariableDeclarator{first}
	for p.cur.Type == lexer.COMMA {
		p.advanceAllowRegex()
		decls = append(decls, p.parseVariableDeclarator())
	}
	init := ast.NewVariableStatement(pos, decls)
	return p.parseForClassic(pos, init)
}

func (p *Parser) parseForClassic(pos lexer.Position, init ast.Node) ast.Statement {
	p.expect(lexer.SEMICOLON, "';'")
	var test ast.Expression
	if p.cur.Type != lexer.SEMICOLON {
		test = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON, "';'")
	var update ast.Expression
	if p.cur.Type != lexer.RPAREN {
		update = p.parseExpression()
	}
	p.expect(lexer.RPAREN, "')'")

	stmt := ast.NewForStatement(pos, init, test, update, nil)
	target := p.pushTarget(ast.TargetIteration, p.takePendingLabels())
	target.Node = stmt
	stmt.Body = p.parseStatement()
	p.popTarget()
	return stmt
}

// parseExpressionNoIn parses the for-statement init clause expression,
// where `in` must not be consumed as the relational/for-in operator
// (12.6, grammar parameter [NoIn]). Since `in`'s precedence sits in the
// relational tier, excluding it here is done by parsing only up through
// assignment with a precedence ceiling that stops before relational `in`
// gets a chance to bind -- simplest correct approach: parse the full
// comma-separated expression but reject a bare top-level `in` by
// temporarily removing it from the precedence table.
func (p *Parser) parseExpressionNoIn() ast.Expression {
	saved := binaryPrecedence[lexer.IN]
	delete(binaryPrecedence, lexer.IN)
	defer func() { binaryPrecedence[lexer.IN] = saved }()
	return p.parseExpression()
}

func (p *Parser) parseBreakStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'break'
	label := p.parseOptionalLabelSameLine()
	p.expectSemicolon()
	if !p.resolveBreakTarget(label) {
		if label != "" {
			p.errorf(pos, "undefined label %q", label)
		} else {
			p.errorf(pos, "illegal break statement")
		}
	}
	return ast.NewBreakStatement(pos, label)
}

func (p *Parser) parseContinueStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'continue'
	label := p.parseOptionalLabelSameLine()
	p.expectSemicolon()
	if !p.resolveContinueTarget(label) {
		if label != "" {
			p.errorf(pos, "undefined label %q", label)
		} else {
			p.errorf(pos, "illegal continue statement")
		}
	}
	return ast.NewContinueStatement(pos, label)
}

// parseOptionalLabelSameLine reads the optional Identifier after `break`/
// `continue`, honoring the restricted production: no line terminator may
// separate the keyword from its label.
func (p *Parser) parseOptionalLabelSameLine() string {
	if p.cur.Type == lexer.IDENT && !p.cur.HasLineTerminatorBefore {
		label := p.cur.Literal
		p.advance()
		return label
	}
	return ""
}

// resolveBreakTarget/resolveContinueTarget walk the Target stack innermost
// first, the same resolution order the evaluator uses at runtime for an
// unlabeled break/continue.
func (p *Parser) resolveBreakTarget(label string) bool {
	if label == "" {
		// An unlabeled break needs an anonymous breakable: a label-set
		// Target alone does not satisfy it.
		for i := len(p.targets) - 1; i >= 0; i-- {
			if p.targets[i].Kind != ast.TargetNamedOnly {
				return true
			}
		}
		return false
	}
	for i := len(p.targets) - 1; i >= 0; i-- {
		if p.targets[i].HasLabel(label) {
			return true
		}
	}
	return false
}

func (p *Parser) resolveContinueTarget(label string) bool {
	for i := len(p.targets) - 1; i >= 0; i-- {
		t := p.targets[i]
		if label == "" {
			if t.Kind == ast.TargetIteration {
				return true
			}
			continue
		}
		if t.HasLabel(label) {
			return t.Kind == ast.TargetIteration
		}
	}
	return false
}

func (p *Parser) parseReturnStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'return'
	if !p.inFunction {
		p.errorf(pos, "return statement outside of a function")
	}
	var arg ast.Expression
	if p.cur.Type != lexer.SEMICOLON && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF && !p.cur.HasLineTerminatorBefore {
		arg = p.parseExpression()
	}
	p.expectSemicolon()
	return ast.NewReturnStatement(pos, arg)
}

func (p *Parser) parseWithStatement() ast.Statement {
	pos := p.cur.Pos
	if p.strict {
		p.errorf(pos, "'with' statements are not allowed in strict mode")
	}
	p.advance() // consume 'with'
	p.expectAllowRegex(lexer.LPAREN, "'('")
	obj := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	body := p.parseStatement()
	return ast.NewWithStatement(pos, obj, body)
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'switch'
	p.expectAllowRegex(lexer.LPAREN, "'('")
	discriminant := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	p.expectAllowRegex(lexer.LBRACE, "'{'")

	stmt := ast.NewSwitchStatement(pos, discriminant, nil)
	target := p.pushTarget(ast.TargetSwitch, p.takePendingLabels())
	target.Node = stmt

	sawDefault := false
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		c, isDefault := p.parseSwitchCase()
		if isDefault {
			if sawDefault {
				p.errorf(c.Test.Pos(), "more than one default clause in switch statement")
			}
			sawDefault = true
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.popTarget()
	p.expectAllowRegex(lexer.RBRACE, "'}'")
	return stmt
}

func (p *Parser) parseSwitchCase() (ast.SwitchCase, bool) {
	var c ast.SwitchCase
	isDefault := false
	if p.cur.Type == lexer.CASE {
		p.advanceAllowRegex()
		c.Test = p.parseExpression()
	} else if p.cur.Type == lexer.DEFAULT {
		isDefault = true
		p.advance()
	} else {
		p.errorf(p.cur.Pos, "expected 'case' or 'default', got %s", p.cur.Type)
		p.synchronize()
		return c, isDefault
	}
	p.expectAllowRegex(lexer.COLON, "':'")
	for p.cur.Type != lexer.CASE && p.cur.Type != lexer.DEFAULT && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		c.Body = append(c.Body, p.parseStatement())
	}
	return c, isDefault
}

func (p *Parser) parseThrowStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'throw'
	if p.cur.HasLineTerminatorBefore {
		p.errorf(pos, "illegal newline after throw")
	}
	arg := p.parseExpression()
	p.expectSemicolon()
	return ast.NewThrowStatement(pos, arg)
}

func (p *Parser) parseTryStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume 'try'
	block := p.parseBlockStatement()

	var catch *ast.CatchClause
	if p.cur.Type == lexer.CATCH {
		p.advance()
		p.expectAllowRegex(lexer.LPAREN, "'('")
		if p.cur.Type != lexer.IDENT {
			p.errorf(p.cur.Pos, "expected identifier in catch clause")
		}
		param := p.cur.Literal
		if p.strict && (param == "eval" || param == "arguments") {
			p.errorf(p.cur.Pos, "catch variable %q is not allowed in strict mode", param)
		}
		p.advance()
		p.expect(lexer.RPAREN, "')'")
		body := p.parseBlockStatement()
		catch = &ast.CatchClause{Param: param, Body: body}
	}

	var finally *ast.BlockStatement
	if p.cur.Type == lexer.FINALLY {
		p.advanceAllowRegex()
		finally = p.parseBlockStatement()
	}

	if catch == nil && finally == nil {
		p.errorf(pos, "missing catch or finally after try")
	}
	return ast.NewTryStatement(pos, block, catch, finally)
}

// looksLikeLabel reports whether the current IDENT token begins a
// LabelledStatement (IDENT ':' ...) -- resolvable with no lookahead buffer
// because the disambiguating colon is examined only after the identifier
// has already been consumed.
func (p *Parser) looksLikeLabel() bool {
	// Only IDENT/keyword tokens reach here; peek is unnecessary because the
	// caller re-checks p.cur (now the token AFTER the identifier) once
	// advance() has consumed it, inside parseLabeledStatement's sibling
	// path below. This predicate itself cannot know without a peek, so
	// instead parseStatement defers the decision: see parseExpressionStatement
	// fallback, which also handles the non-label case via backtrack-free
	// expression parsing (an identifier followed by ':' is not a valid
	// expression continuation, so we special-case it here by checking the
	// raw lexer for a following colon without tokenizing the identifier
	// twice).
	return p.peekIsColonAfterIdentifier()
}

// peekIsColonAfterIdentifier scans past the current identifier's raw text
// to see whether a ':' (not '::') follows, without consuming any tokens
// through the parser's normal advance path. This is the one place the
// grammar genuinely needs a second token of information before deciding
// how to parse the first, so it is answered directly from source text
// rather than by adding a general lookahead buffer.
func (p *Parser) peekIsColonAfterIdentifier() bool {
	return p.lex.PeekPunctuatorAfterCurrent(lexer.COLON)
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	pos := p.cur.Pos
	label := p.cur.Literal
	p.advance() // consume identifier
	p.expect(lexer.COLON, "':'")

	for _, t := range p.targets {
		if t.HasLabel(label) {
			p.errorf(pos, "label %q has already been declared", label)
			break
		}
	}

	// The label is offered to the next breakable statement via
	// pendingLabels, and additionally covers any non-breakable body
	// through a named-only Target so `break label` resolves inside e.g. a
	// labeled block.
	p.pendingLabels = append(p.pendingLabels, label)
	p.pushTarget(ast.TargetNamedOnly, []string{label})
	body := p.parseStatement()
	p.popTarget()
	p.pendingLabels = nil
	return ast.NewLabeledStatement(pos, label, body)
}

// takePendingLabels drains the labels accumulated by one or more
// LabelledStatements directly wrapping the breakable statement about to
// be parsed, so they attach to that statement's Target.
func (p *Parser) takePendingLabels() []string {
	labels := p.pendingLabels
	p.pendingLabels = nil
	return labels
}
