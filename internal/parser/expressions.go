package parser

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/lexer"
)

// parseExpression parses a full Expression production, including the comma
// operator.
func (p *Parser) parseExpression() ast.Expression {
	first := p.parseAssignmentExpression()
	if p.cur.Type != lexer.COMMA {
		return first
	}
	pos := first.Pos()
	exprs := []ast.Expression{first}
	for p.cur.Type == lexer.COMMA {
		p.advanceAllowRegex()
		exprs = append(exprs, p.parseAssignmentExpression())
	}
	return ast.NewSequenceExpression(pos, exprs)
}

// parseAssignmentExpression handles `=` and the compound `op=` forms, which
// are right-associative and sit below the conditional expression in
// precedence.
func (p *Parser) parseAssignmentExpression() ast.Expression {
	left := p.parseConditionalExpression()

	if op, ok := assignmentOps[p.cur.Type]; ok {
		pos := p.cur.Pos
		if !isValidAssignmentTarget(left) {
			p.errorf(pos, "invalid assignment target")
		}
		if p.strict && isRestrictedIdentifier(left) {
			p.errorf(pos, "assignment to eval or arguments is not allowed in strict mode")
		}
		p.advanceAllowRegex()
		value := p.parseAssignmentExpression()
		return ast.NewAssignmentExpression(pos, op, left, value)
	}
	return left
}

func isValidAssignmentTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	}
	return false
}

func isRestrictedIdentifier(e ast.Expression) bool {
	id, ok := e.(*ast.Identifier)
	return ok && (id.Name == "eval" || id.Name == "arguments")
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	test := p.parseBinaryExpression(precLowest + 1)
	if p.cur.Type != lexer.QUESTION {
		return test
	}
	pos := p.cur.Pos
	p.advanceAllowRegex()
	cons := p.parseAssignmentExpression()
	if !p.expectAllowRegex(lexer.COLON, "':'") {
		return ast.NewConditionalExpression(pos, test, cons, cons)
	}
	alt := p.parseAssignmentExpression()
	return ast.NewConditionalExpression(pos, test, cons, alt)
}

// parseBinaryExpression is the Pratt-style precedence-climbing loop,
// covering every LogicalORExpression..MultiplicativeExpression production
// in one table-driven pass.
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	left := p.parseUnaryExpression()

	for {
		prec, ok := binaryPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.cur
		p.advanceAllowRegex()
		right := p.parseBinaryExpression(prec + 1)

		if opTok.Type == lexer.LOGAND || opTok.Type == lexer.LOGOR {
			op := ast.OpLogAnd
			if opTok.Type == lexer.LOGOR {
				op = ast.OpLogOr
			}
			left = ast.NewLogicalExpression(opTok.Pos, op, left, right)
			continue
		}

		op := binaryOperatorFor(opTok.Type)
		left = p.foldBinary(opTok.Pos, op, left, right)
	}
}

func binaryOperatorFor(tt lexer.TokenType) ast.BinaryOperator {
	switch tt {
	case lexer.PLUS:
		return ast.OpAdd
	case lexer.MINUS:
		return ast.OpSub
	case lexer.STAR:
		return ast.OpMul
	case lexer.SLASH:
		return ast.OpDiv
	case lexer.PERCENT:
		return ast.OpMod
	case lexer.LT:
		return ast.OpLT
	case lexer.GT:
		return ast.OpGT
	case lexer.LE:
		return ast.OpLE
	case lexer.GE:
		return ast.OpGE
	case lexer.EQ:
		return ast.OpEq
	case lexer.NE:
		return ast.OpNotEq
	case lexer.SEQ:
		return ast.OpStrictEq
	case lexer.SNE:
		return ast.OpStrictNeq
	case lexer.AMP:
		return ast.OpBitAnd
	case lexer.PIPE:
		return ast.OpBitOr
	case lexer.CARET:
		return ast.OpBitXor
	case lexer.SHL:
		return ast.OpShl
	case lexer.SHR:
		return ast.OpShr
	case lexer.USHR:
		return ast.OpUShr
	case lexer.INSTANCEOF:
		return ast.OpInstanceof
	case lexer.IN:
		return ast.OpIn
	}
	return ""
}

// foldableArith is the subset of binary operators that constant-fold cleanly
// over two numeric literals without needing the evaluator's full coercion
// machinery.
var foldableArith = map[ast.BinaryOperator]bool{
	ast.OpAdd: true, ast.OpSub: true, ast.OpMul: true, ast.OpDiv: true, ast.OpMod: true,
	ast.OpBitAnd: true, ast.OpBitOr: true, ast.OpBitXor: true,
	ast.OpShl: true, ast.OpShr: true, ast.OpUShr: true,
}

// foldBinary builds a BinaryExpression, folding it to a NumberLiteral when
// both operands are already numeric literals and the operator is in the
// foldable arithmetic/bitwise set.
func (p *Parser) foldBinary(pos lexer.Position, op ast.BinaryOperator, left, right ast.Expression) ast.Expression {
	if foldableArith[op] {
		ln, lok := left.(*ast.NumberLiteral)
		rn, rok := right.(*ast.NumberLiteral)
		if lok && rok {
			if v, ok := foldArith(op, ln.Value, rn.Value); ok {
				return ast.NewNumberLiteral(pos, v)
			}
		}
	}
	return ast.NewBinaryOperation(pos, op, left, right)
}

func foldArith(op ast.BinaryOperator, a, b float64) (float64, bool) {
	switch op {
	case ast.OpAdd:
		return a + b, true
	case ast.OpSub:
		return a - b, true
	case ast.OpMul:
		return a * b, true
	case ast.OpDiv:
		return a / b, true
	case ast.OpMod:
		return math.Mod(a, b), true
	case ast.OpBitAnd:
		return float64(toInt32(a) & toInt32(b)), true
	case ast.OpBitOr:
		return float64(toInt32(a) | toInt32(b)), true
	case ast.OpBitXor:
		return float64(toInt32(a) ^ toInt32(b)), true
	case ast.OpShl:
		return float64(toInt32(a) << (toUint32(b) & 31)), true
	case ast.OpShr:
		return float64(toInt32(a) >> (toUint32(b) & 31)), true
	case ast.OpUShr:
		return float64(toUint32(a) >> (toUint32(b) & 31)), true
	}
	return 0, false
}

// toInt32/toUint32 reproduce ToInt32/ToUint32 for the
// constant-folding pass only; the evaluator uses internal/runtime's copies
// for every non-constant-folded operation so both paths must agree exactly.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	n := math.Trunc(f)
	m := math.Mod(n, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	if m >= 2147483648 {
		m -= 4294967296
	}
	return int32(m)
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	n := math.Trunc(f)
	m := math.Mod(n, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	switch p.cur.Type {
	case lexer.PLUS, lexer.MINUS, lexer.BANG, lexer.TILDE, lexer.TYPEOF, lexer.VOID, lexer.DELETE:
		pos := p.cur.Pos
		op := unaryOperatorFor(p.cur.Type)
		p.advanceAllowRegex()
		operand := p.parseUnaryExpression()
		if op == ast.OpDelete {
			if id, ok := operand.(*ast.Identifier); ok && p.strict {
				p.errorf(pos, "delete of an unqualified identifier %q is not allowed in strict mode", id.Name)
			}
		}
		if (op == ast.OpUnaryMinus || op == ast.OpUnaryPlus) {
			if n, ok := operand.(*ast.NumberLiteral); ok {
				if op == ast.OpUnaryMinus {
					return ast.NewNumberLiteral(pos, -n.Value)
				}
				return ast.NewNumberLiteral(pos, n.Value)
			}
		}
		if op == ast.OpBitNot {
			if n, ok := operand.(*ast.NumberLiteral); ok {
				return ast.NewNumberLiteral(pos, float64(^toInt32(n.Value)))
			}
		}
		return ast.NewUnaryExpression(pos, op, operand)
	case lexer.INC, lexer.DEC:
		return p.parsePrefixUpdate()
	}
	return p.parsePostfixExpression()
}

func unaryOperatorFor(tt lexer.TokenType) ast.UnaryOperator {
	switch tt {
	case lexer.PLUS:
		return ast.OpUnaryPlus
	case lexer.MINUS:
		return ast.OpUnaryMinus
	case lexer.BANG:
		return ast.OpNot
	case lexer.TILDE:
		return ast.OpBitNot
	case lexer.TYPEOF:
		return ast.OpTypeof
	case lexer.VOID:
		return ast.OpVoid
	case lexer.DELETE:
		return ast.OpDelete
	}
	return ""
}

func (p *Parser) parsePrefixUpdate() ast.Expression {
	pos := p.cur.Pos
	opText := "++"
	if p.cur.Type == lexer.DEC {
		opText = "--"
	}
	p.advanceAllowRegex()
	operand := p.parseUnaryExpression()
	if !isValidAssignmentTarget(operand) {
		p.errorf(pos, "invalid %s operand", opText)
	}
	if p.strict && isRestrictedIdentifier(operand) {
		p.errorf(pos, "%s is not allowed as an operand of %s in strict mode", describeIdent(operand), opText)
	}
	return ast.NewUpdateExpression(pos, opText, operand, true)
}

func describeIdent(e ast.Expression) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

// parsePostfixExpression handles `++`/`--` when they immediately follow
// the operand with no line terminator.
func (p *Parser) parsePostfixExpression() ast.Expression {
	expr := p.parseLeftHandSideExpression()
	if (p.cur.Type == lexer.INC || p.cur.Type == lexer.DEC) && !p.cur.HasLineTerminatorBefore {
		pos := p.cur.Pos
		opText := "++"
		if p.cur.Type == lexer.DEC {
			opText = "--"
		}
		if !isValidAssignmentTarget(expr) {
			p.errorf(pos, "invalid %s operand", opText)
		}
		if p.strict && isRestrictedIdentifier(expr) {
			p.errorf(pos, "%s is not allowed as an operand of %s in strict mode", describeIdent(expr), opText)
		}
		p.advance()
		return ast.NewUpdateExpression(pos, opText, expr, false)
	}
	return expr
}

// parseLeftHandSideExpression covers NewExpression/CallExpression/member
// access, sharing one loop since both productions interleave `.`/`[]`
// accesses with `(...)` calls and `new` constructions.
func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	var expr ast.Expression
	if p.cur.Type == lexer.NEW {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	return p.parseCallTail(expr)
}

func (p *Parser) parseNewExpression() ast.Expression {
	pos := p.cur.Pos
	p.advanceAllowRegex()
	var callee ast.Expression
	if p.cur.Type == lexer.NEW {
		callee = p.parseNewExpression()
	} else {
		callee = p.parseMemberTail(p.parsePrimaryExpression())
	}
	var args []ast.Expression
	if p.cur.Type == lexer.LPAREN {
		args = p.parseArguments()
	}
	return ast.NewNewExpression(pos, callee, args)
}

// parseMemberTail consumes only `.`/`[]` accesses (no calls), the
// MemberExpression production used as a NewExpression's callee so that
// `new a.b(c)` binds `(c)` to the whole `new`, not to `b`.
func (p *Parser) parseMemberTail(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Type {
		case lexer.DOT:
			pos := p.cur.Pos
			p.advance()
			name, ok := identifierName(p.cur)
			if !ok {
				p.errorf(p.cur.Pos, "expected property name after '.'")
				return expr
			}
			prop := ast.NewIdentifier(p.cur.Pos, name)
			p.advance()
			expr = ast.NewMemberExpression(pos, expr, prop, false)
		case lexer.LBRACKET:
			pos := p.cur.Pos
			p.advanceAllowRegex()
			idx := p.parseExpression()
			p.expect(lexer.RBRACKET, "']'")
			expr = ast.NewMemberExpression(pos, expr, idx, true)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallTail(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Type {
		case lexer.DOT, lexer.LBRACKET:
			expr = p.parseMemberTail(expr)
		case lexer.LPAREN:
			pos := p.cur.Pos
			args := p.parseArguments()
			expr = ast.NewCallExpression(pos, expr, args)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.advanceAllowRegex() // consume '('
	var args []ast.Expression
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		args = append(args, p.parseAssignmentExpression())
		if p.cur.Type == lexer.COMMA {
			p.advanceAllowRegex()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN, "')'")
	return args
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case lexer.THIS:
		p.advance()
		return ast.NewThisExpression(tok.Pos)
	case lexer.IDENT:
		p.advance()
		return ast.NewIdentifier(tok.Pos, tok.Literal)
	case lexer.NUMBER:
		p.advance()
		v, err := lexer.NumericValue(tok)
		if err != nil {
			p.errorf(tok.Pos, "invalid numeric literal %q", tok.Literal)
		}
		if tok.NumType == lexer.Octal && p.strict {
			p.errorf(tok.Pos, "octal literals are not allowed in strict mode")
		}
		return ast.NewNumberLiteral(tok.Pos, v)
	case lexer.STRING:
		p.advance()
		if tok.StrEscape == lexer.OctalEscape && p.strict {
			p.errorf(tok.Pos, "octal escape sequences are not allowed in strict mode")
		}
		return ast.NewStringLiteral(tok.Pos, tok.Literal, tok.StrEscape)
	case lexer.TRUE_LIT:
		p.advance()
		return ast.NewBooleanLiteral(tok.Pos, true)
	case lexer.FALSE_LIT:
		p.advance()
		return ast.NewBooleanLiteral(tok.Pos, false)
	case lexer.NULL_LIT:
		p.advance()
		return ast.NewNullLiteral(tok.Pos)
	case lexer.REGEX:
		p.advance()
		pattern, flags := splitRegexLiteral(tok.Literal)
		return ast.NewRegexLiteral(tok.Pos, pattern, flags)
	case lexer.LPAREN:
		p.advanceAllowRegex()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN, "')'")
		if sl, ok := expr.(*ast.StringLiteral); ok {
			sl.MarkParenthesized()
		}
		return expr
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseObjectLiteral()
	case lexer.FUNCTION:
		return p.parseFunctionLiteral(true)
	}

	p.errorf(tok.Pos, "unexpected token %s in expression", tok.Type)
	p.advance()
	return ast.NewNullLiteral(tok.Pos)
}

// splitRegexLiteral separates the lexer's combined "body\x00flags" encoding
// (see lexer.ScanRegex) back into the two pieces the AST node wants.
func splitRegexLiteral(combined string) (pattern, flags string) {
	for i := 0; i < len(combined); i++ {
		if combined[i] == 0 {
			return combined[:i], combined[i+1:]
		}
	}
	return combined, ""
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.cur.Pos
	p.advanceAllowRegex() // consume '['
	var elems []ast.Expression
	for p.cur.Type != lexer.RBRACKET && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.COMMA {
			elems = append(elems, nil) // elision
			p.advanceAllowRegex()
			continue
		}
		elems = append(elems, p.parseAssignmentExpression())
		if p.cur.Type == lexer.COMMA {
			p.advanceAllowRegex()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET, "']'")
	return ast.NewArrayLiteral(pos, elems)
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	pos := p.cur.Pos
	p.advanceAllowRegex() // consume '{'

	var props []ast.Property
	seenNames := map[string]map[ast.PropertyKind]bool{}

	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		prop := p.parseObjectProperty()
		p.checkDuplicateProperty(seenNames, prop)
		props = append(props, prop)
		if p.cur.Type == lexer.COMMA {
			p.advanceAllowRegex()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return ast.NewObjectLiteral(pos, props)
}

// checkDuplicateProperty enforces the strict-mode "no duplicate data
// property names in an object literal" restriction and the always-on
// "accessor name must not collide with a data property, or with an
// accessor of the same kind" restriction.
func (p *Parser) checkDuplicateProperty(seen map[string]map[ast.PropertyKind]bool, prop ast.Property) {
	name := propertyKeyText(prop.Key)
	kinds, ok := seen[name]
	if ok {
		switch {
		case kinds[ast.PropertyInit] && prop.Kind == ast.PropertyInit:
			if p.strict {
				p.errorf(prop.Key.Pos(), "duplicate data property %q is not allowed in strict mode object literals", name)
			}
		case kinds[ast.PropertyInit] || prop.Kind == ast.PropertyInit:
			p.errorf(prop.Key.Pos(), "property %q cannot have both a data and an accessor descriptor", name)
		case kinds[prop.Kind]:
			p.errorf(prop.Key.Pos(), "duplicate %s accessor for property %q", accessorKindName(prop.Kind), name)
		}
	} else {
		kinds = map[ast.PropertyKind]bool{}
		seen[name] = kinds
	}
	kinds[prop.Kind] = true
}

func accessorKindName(k ast.PropertyKind) string {
	if k == ast.PropertyGet {
		return "get"
	}
	return "set"
}

func propertyKeyText(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name
	case *ast.StringLiteral:
		return k.Value
	case *ast.NumberLiteral:
		return strconv.FormatFloat(k.Value, 'g', -1, 64)
	}
	return ""
}

func (p *Parser) parseObjectProperty() ast.Property {
	if (p.cur.Literal == "get" || p.cur.Literal == "set") && p.cur.Type == lexer.IDENT {
		kindWord := p.cur.Literal
		savedTok := p.cur
		save := *p.lex
		p.advance()
		if p.cur.Type != lexer.COLON && p.cur.Type != lexer.COMMA && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.LPAREN {
			key := p.parsePropertyKey()
			fn := p.parseAccessorFunction(key.Pos(), kindWord == "set")
			kind := ast.PropertyGet
			if kindWord == "set" {
				kind = ast.PropertySet
			}
			return ast.Property{Key: key, Value: fn, Kind: kind}
		}
		// Not actually a getter/setter ("get" used as a plain property
		// name): restore lexer state and re-read as a normal property.
		*p.lex = save
		p.cur = savedTok
	}

	key := p.parsePropertyKey()
	p.expect(lexer.COLON, "':'")
	value := p.parseAssignmentExpression()
	return ast.Property{Key: key, Value: value, Kind: ast.PropertyInit}
}

// parsePropertyKey parses an object-literal PropertyName: IdentifierName,
// StringLiteral, or NumericLiteral.
func (p *Parser) parsePropertyKey() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case lexer.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Pos, tok.Literal, tok.StrEscape)
	case lexer.NUMBER:
		p.advance()
		v, _ := lexer.NumericValue(tok)
		return ast.NewNumberLiteral(tok.Pos, v)
	}
	if name, ok := identifierName(tok); ok {
		p.advance()
		return ast.NewIdentifier(tok.Pos, name)
	}
	p.errorf(tok.Pos, "expected property name, got %s", tok.Type)
	p.advance()
	return ast.NewIdentifier(tok.Pos, "")
}
