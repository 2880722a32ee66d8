// Package ast defines the imp language AST node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() Span
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAdd  BinaryOp = "+"
	OpSub  BinaryOp = "-"
	OpMul  BinaryOp = "*"
	OpDiv  BinaryOp = "/"
	OpGt   BinaryOp = ">"
	OpLt   BinaryOp = "<"
	OpGtEq BinaryOp = ">="
	OpLtEq BinaryOp = "<="
	OpEqEq BinaryOp = "=="
	OpNeq  BinaryOp = "!="
	OpAnd  BinaryOp = "&&"
	OpOr   BinaryOp = "||"
)

// UnaryOp represents a unary operator.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Stmt is the interface for all statement nodes ---

type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// Block is a delimiter-bounded ordered statement sequence.
type Block []Stmt

// --- Expressions ---

type IntLiteral struct {
	Span  Span
	Value int64
}

func (n *IntLiteral) Kind() string   { return "IntLiteral" }
func (n *IntLiteral) NodeSpan() Span { return n.Span }
func (n *IntLiteral) exprNode()      {}

type Ident struct {
	Span Span
	Name string
}

func (n *Ident) Kind() string   { return "Ident" }
func (n *Ident) NodeSpan() Span { return n.Span }
func (n *Ident) exprNode()      {}

type BinaryExpr struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Kind() string   { return "BinaryExpr" }
func (n *BinaryExpr) NodeSpan() Span { return n.Span }
func (n *BinaryExpr) exprNode()      {}

type UnaryExpr struct {
	Span    Span
	Op      UnaryOp
	Operand Expr
}

func (n *UnaryExpr) Kind() string   { return "UnaryExpr" }
func (n *UnaryExpr) NodeSpan() Span { return n.Span }
func (n *UnaryExpr) exprNode()      {}

type CallExpr struct {
	Span Span
	Name string
	Args []Expr
}

func (n *CallExpr) Kind() string   { return "CallExpr" }
func (n *CallExpr) NodeSpan() Span { return n.Span }
func (n *CallExpr) exprNode()      {}

// --- Statements ---

type AssignStmt struct {
	Span  Span
	Name  string
	Value Expr
}

func (n *AssignStmt) Kind() string   { return "AssignStmt" }
func (n *AssignStmt) NodeSpan() Span { return n.Span }
func (n *AssignStmt) stmtNode()      {}

type ExprStmt struct {
	Span Span
	Expr Expr
}

func (n *ExprStmt) Kind() string   { return "ExprStmt" }
func (n *ExprStmt) NodeSpan() Span { return n.Span }
func (n *ExprStmt) stmtNode()      {}

type IfStmt struct {
	Span Span
	Cond Expr
	Then Block
	Else Block // nil when no else branch
}

func (n *IfStmt) Kind() string   { return "IfStmt" }
func (n *IfStmt) NodeSpan() Span { return n.Span }
func (n *IfStmt) stmtNode()      {}

type WhileStmt struct {
	Span Span
	Cond Expr
	Body Block
}

func (n *WhileStmt) Kind() string   { return "WhileStmt" }
func (n *WhileStmt) NodeSpan() Span { return n.Span }
func (n *WhileStmt) stmtNode()      {}

type FnDecl struct {
	Span   Span
	Name   string
	Params []string
	Body   Block
}

func (n *FnDecl) Kind() string   { return "FnDecl" }
func (n *FnDecl) NodeSpan() Span { return n.Span }
func (n *FnDecl) stmtNode()      {}

type ReturnStmt struct {
	Span  Span
	Value Expr
}

func (n *ReturnStmt) Kind() string   { return "ReturnStmt" }
func (n *ReturnStmt) NodeSpan() Span { return n.Span }
func (n *ReturnStmt) stmtNode()      {}

// --- Program ---

type Program struct {
	Span       Span
	Statements []Stmt
}

func (n *Program) Kind() string   { return "Program" }
func (n *Program) NodeSpan() Span { return n.Span }
