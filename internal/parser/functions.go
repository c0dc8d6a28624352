package parser

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/lexer"
)

// parseFunctionLiteral parses a FunctionExpression or FunctionDeclaration
// body. When asExpr is true the name is optional; callers
// for FunctionDeclaration require one and report it themselves via
// parseFunctionDeclaration.
func (p *Parser) parseFunctionLiteral(asExpr bool) *ast.FunctionLiteral {
	pos := p.cur.Pos
	p.advance() // consume 'function'

	fn := ast.NewFunctionLiteral(pos)
	fn.IsExpr = asExpr

	if p.cur.Type == lexer.IDENT {
		fn.Name = p.cur.Literal
		p.advance()
	} else if !asExpr {
		p.errorf(p.cur.Pos, "function declaration requires a name")
	}

	p.parseFunctionRest(fn, pos)
	return fn
}

// parseAccessorFunction parses the parameter list and body of an
// object-literal getter or setter, which has no `function` keyword and no
// name. isSetter enforces the arity the grammar fixes: a
// getter takes no parameters, a setter exactly one.
func (p *Parser) parseAccessorFunction(pos lexer.Position, isSetter bool) *ast.FunctionLiteral {
	fn := ast.NewFunctionLiteral(pos)
	fn.IsExpr = true
	p.parseFunctionRest(fn, pos)
	if isSetter && len(fn.Params) != 1 {
		p.errorf(pos, "setter must have exactly one parameter")
	}
	if !isSetter && len(fn.Params) != 0 {
		p.errorf(pos, "getter must have no parameters")
	}
	return fn
}

// parseFunctionRest parses the `(params) { body }` tail shared by
// function literals and accessors, managing the scope stack and the
// strict-mode directive scan for the body.
func (p *Parser) parseFunctionRest(fn *ast.FunctionLiteral, pos lexer.Position) {
	p.expect(lexer.LPAREN, "'('")
	fn.Params = p.parseFormalParameterList()
	p.expectAllowRegex(lexer.LBRACE, "'{'")

	outerStrict := p.strict
	outerScope := p.currentScope()
	fnScope := ast.NewScope(outerScope)
	fn.Scope = fnScope
	p.scopes = append(p.scopes, fnScope)
	outerFn := p.inFunction
	p.inFunction = true

	body, strict := p.parseStatementListWithDirectives()
	fn.Strict = outerStrict || strict
	p.strict = outerStrict // restore; strict was only active while scanning this body

	if fn.Strict {
		p.checkStrictFunctionRestrictions(fn, pos)
	}

	fn.Body = body

	p.scopes = p.scopes[:len(p.scopes)-1]
	p.inFunction = outerFn

	p.expect(lexer.RBRACE, "'}'")
}

// checkStrictFunctionRestrictions enforces the strict-mode-only checks that
// depend on the function's full parameter list and name:
// eval/arguments as a parameter or function name, and duplicate formal
// parameter names.
func (p *Parser) checkStrictFunctionRestrictions(fn *ast.FunctionLiteral, pos lexer.Position) {
	if fn.Name == "eval" || fn.Name == "arguments" {
		p.errorf(pos, "function name %q is not allowed in strict mode", fn.Name)
	}
	seen := map[string]bool{}
	for _, param := range fn.Params {
		if param == "eval" || param == "arguments" {
			p.errorf(pos, "parameter named %q is not allowed in strict mode", param)
		}
		if seen[param] {
			p.errorf(pos, "duplicate parameter name %q is not allowed in strict mode", param)
		}
		seen[param] = true
	}
}

func (p *Parser) parseFormalParameterList() []string {
	var params []string
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if p.cur.Type != lexer.IDENT {
			p.errorf(p.cur.Pos, "expected parameter name, got %s", p.cur.Type)
			p.advance()
		} else {
			params = append(params, p.cur.Literal)
			p.advance()
		}
		if p.cur.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN, "')'")
	return params
}

// parseFunctionDeclaration parses a FunctionDeclaration statement and
// registers it in the enclosing scope's hoisted function-declaration list
// (Declaration Binding Instantiation, 10.5 step 5).
func (p *Parser) parseFunctionDeclaration() ast.Statement {
	pos := p.cur.Pos
	fn := p.parseFunctionLiteral(false)
	p.currentScope().DeclareFunction(fn)
	return ast.NewFunctionDeclaration(pos, fn)
}
