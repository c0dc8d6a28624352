package ast

import "github.com/cwbudde/go-es5/internal/lexer"

func (BlockStatement) statementNode()      {}
func (VariableStatement) statementNode()   {}
func (ExpressionStatement) statementNode() {}
func (EmptyStatement) statementNode()      {}
func (IfStatement) statementNode()         {}
func (ForStatement) statementNode()        {}
func (ForInStatement) statementNode()      {}
func (WhileStatement) statementNode()      {}
func (DoWhileStatement) statementNode()    {}
func (BreakStatement) statementNode()      {}
func (ContinueStatement) statementNode()   {}
func (ReturnStatement) statementNode()     {}
func (WithStatement) statementNode()       {}
func (SwitchStatement) statementNode()     {}
func (ThrowStatement) statementNode()      {}
func (TryStatement) statementNode()        {}
func (DebuggerStatement) statementNode()   {}
func (LabeledStatement) statementNode()    {}
func (FunctionDeclaration) statementNode() {}

func (ForStatement) breakableNode()   {}
func (ForInStatement) breakableNode() {}
func (WhileStatement) breakableNode() {}
func (DoWhileStatement) breakableNode() {}
func (SwitchStatement) breakableNode() {}

type BlockStatement struct {
	baseNode
	Body []Statement
}

func NewBlockStatement(pos lexer.Position, body []Statement) *BlockStatement {
	return &BlockStatement{baseNode{pos}, body}
}

// VariableDeclarator is one `name` or `name = init` entry in a `var`
// statement.
type VariableDeclarator struct {
	Name string
	Init Expression // nil if absent
}

type VariableStatement struct {
	baseNode
	Declarations []VariableDeclarator
}

func NewVariableStatement(pos lexer.Position, decls []VariableDeclarator) *VariableStatement {
	return &VariableStatement{baseNode{pos}, decls}
}

type ExpressionStatement struct {
	baseNode
	Expression Expression
	// directive holds the literal text when this statement is part of a
	// recognized directive prologue entry; empty otherwise.
	directive string
}

func NewExpressionStatement(pos lexer.Position, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{baseNode: baseNode{pos}, Expression: expr}
}

func (s *ExpressionStatement) SetDirective(text string) { s.directive = text }
func (s *ExpressionStatement) Directive() (string, bool) {
	return s.directive, s.directive != ""
}

type EmptyStatement struct{ baseNode }

func NewEmptyStatement(pos lexer.Position) *EmptyStatement { return &EmptyStatement{baseNode{pos}} }

type IfStatement struct {
	baseNode
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else
}

func NewIfStatement(pos lexer.Position, test Expression, cons, alt Statement) *IfStatement {
	return &IfStatement{baseNode{pos}, test, cons, alt}
}

type ForStatement struct {
	baseNode
	Init   Node // *VariableStatement, Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
	Label  string
}

func NewForStatement(pos lexer.Position, init Node, test, update Expression, body Statement) *ForStatement {
	return &ForStatement{baseNode: baseNode{pos}, Init: init, Test: test, Update: update, Body: body}
}

// ForInStatement's Declare marks a `for (var x in obj)` form, in which
// case Target names the single declared identifier directly; otherwise
// Target is the LHS expression re-evaluated for each key.
type ForInStatement struct {
	baseNode
	Declare    bool
	VarName    string
	Target     Expression
	Object     Expression
	Body       Statement
	Label      string
}

func NewForInStatement(pos lexer.Position, object Expression, body Statement) *ForInStatement {
	return &ForInStatement{baseNode: baseNode{pos}, Object: object, Body: body}
}

type WhileStatement struct {
	baseNode
	Test  Expression
	Body  Statement
	Label string
}

func NewWhileStatement(pos lexer.Position, test Expression, body Statement) *WhileStatement {
	return &WhileStatement{baseNode{pos}, test, body, ""}
}

type DoWhileStatement struct {
	baseNode
	Test  Expression
	Body  Statement
	Label string
}

func NewDoWhileStatement(pos lexer.Position, body Statement, test Expression) *DoWhileStatement {
	return &DoWhileStatement{baseNode{pos}, test, body, ""}
}

// BreakStatement/ContinueStatement carry the textual label, if any; the
// parser's target-resolution pass has already validated it, and the
// evaluator routes the completion to the innermost statement whose label
// set matches -- see internal/interp.
type BreakStatement struct {
	baseNode
	Label string
}

func NewBreakStatement(pos lexer.Position, label string) *BreakStatement {
	return &BreakStatement{baseNode{pos}, label}
}

type ContinueStatement struct {
	baseNode
	Label string
}

func NewContinueStatement(pos lexer.Position, label string) *ContinueStatement {
	return &ContinueStatement{baseNode{pos}, label}
}

type ReturnStatement struct {
	baseNode
	Argument Expression // nil if bare `return;`
}

func NewReturnStatement(pos lexer.Position, arg Expression) *ReturnStatement {
	return &ReturnStatement{baseNode{pos}, arg}
}

// WithStatement is rejected by the parser in strict mode.
type WithStatement struct {
	baseNode
	Object Expression
	Body   Statement
}

func NewWithStatement(pos lexer.Position, object Expression, body Statement) *WithStatement {
	return &WithStatement{baseNode{pos}, object, body}
}

type SwitchCase struct {
	Test Expression // nil for `default:`
	Body []Statement
}

type SwitchStatement struct {
	baseNode
	Discriminant Expression
	Cases        []SwitchCase
	Label        string
}

func NewSwitchStatement(pos lexer.Position, discriminant Expression, cases []SwitchCase) *SwitchStatement {
	return &SwitchStatement{baseNode: baseNode{pos}, Discriminant: discriminant, Cases: cases}
}

type ThrowStatement struct {
	baseNode
	Argument Expression
}

func NewThrowStatement(pos lexer.Position, arg Expression) *ThrowStatement {
	return &ThrowStatement{baseNode{pos}, arg}
}

type CatchClause struct {
	Param string
	Body  *BlockStatement
}

type TryStatement struct {
	baseNode
	Block   *BlockStatement
	Catch   *CatchClause // nil if absent
	Finally *BlockStatement // nil if absent
}

func NewTryStatement(pos lexer.Position, block *BlockStatement, catch *CatchClause, fin *BlockStatement) *TryStatement {
	return &TryStatement{baseNode{pos}, block, catch, fin}
}

type DebuggerStatement struct{ baseNode }

func NewDebuggerStatement(pos lexer.Position) *DebuggerStatement {
	return &DebuggerStatement{baseNode{pos}}
}

// LabeledStatement is purely structural at evaluation time;
// the label lives on the Target the parser built when it saw the label.
type LabeledStatement struct {
	baseNode
	Label string
	Body  Statement
}

func NewLabeledStatement(pos lexer.Position, label string, body Statement) *LabeledStatement {
	return &LabeledStatement{baseNode{pos}, label, body}
}

// FunctionDeclaration wraps a named FunctionLiteral appearing as a
// statement (as opposed to within an expression context).
type FunctionDeclaration struct {
	baseNode
	Function *FunctionLiteral
}

func NewFunctionDeclaration(pos lexer.Position, fn *FunctionLiteral) *FunctionDeclaration {
	return &FunctionDeclaration{baseNode{pos}, fn}
}
