package ast

import (
	"github.com/funvibe/tea/internal/symbols"
	"github.com/funvibe/tea/internal/token"
	"github.com/funvibe/tea/internal/typesystem"
)

// Node is the base interface for all AST nodes.
type Node interface {
	GetToken() token.Token
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	Accept(v ExprVisitor) (typesystem.Type, error)
	expressionNode()
}

// Statement is a Node executed for its effect.
type Statement interface {
	Node
	AcceptStatement(v StmtVisitor) error
	statementNode()
}

// Declaration is a named definition that symbols point to.
type Declaration interface {
	Node
	symbols.Declaration
	AcceptDeclaration(v DeclVisitor) error
	Base() *DeclBase
	declarationNode()
}

// Callable is implemented by every declaration with a parameter list.
type Callable interface {
	Declaration
	Signature() *FuncBase
}

// Modifier is the access level of a declaration.
type Modifier int

const (
	Public Modifier = iota
	Internal
	Protected
	Private
)

func (m Modifier) String() string {
	switch m {
	case Internal:
		return "internal"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return "public"
}

// DeclBase holds the attributes shared by all declarations.
type DeclBase struct {
	Token        token.Token
	Name         string
	Modifier     Modifier
	DeclaredType TypeExpr        // Explicit annotation
	NotedType    TypeExpr        // Annotation recovered from doc comments
	InferedType  typesystem.Type // Set once per successful check
	IsVirtual    bool            // Synthesized, not present in source
	IsStatic     bool

	// Filled by the binder.
	Program  *Program
	Block    *Block   // Enclosing block of locals
	Function Callable // Enclosing callable of locals, parameters and lambdas

	checked  bool
	checking bool
}

func (d *DeclBase) GetToken() token.Token { return d.Token }
func (d *DeclBase) DeclName() string      { return d.Name }
func (d *DeclBase) Base() *DeclBase       { return d }
func (d *DeclBase) declarationNode()      {}

func (d *DeclBase) IsChecked() bool  { return d.checked }
func (d *DeclBase) IsChecking() bool { return d.checking }

// MarkChecking flags the start of a check. It is never cleared on success.
func (d *DeclBase) MarkChecking() { d.checking = true }

// MarkChecked is monotonic.
func (d *DeclBase) MarkChecked() { d.checked = true }

// QualifiedName is the name prefixed with the declaring unit and file.
func (d *DeclBase) QualifiedName() string {
	if d.Program == nil {
		return d.Name
	}
	unit := ""
	if d.Program.Unit != nil {
		unit = d.Program.Unit.Name
	}
	return unit + ":" + d.Program.File + ":" + d.Name
}

// Hint returns the declared annotation, falling back to the noted one.
func (d *DeclBase) Hint() TypeExpr {
	if d.DeclaredType != nil {
		return d.DeclaredType
	}
	return d.NotedType
}

// Unit is a compilation module: programs sharing one global scope.
type Unit struct {
	Name         string
	Programs     []*Program
	Scope        *symbols.Scope
	Dependencies []string // Units referenced through use declarations
}

// AddDependency records name once.
func (u *Unit) AddDependency(name string) {
	if name == u.Name {
		return
	}
	for _, d := range u.Dependencies {
		if d == name {
			return
		}
	}
	u.Dependencies = append(u.Dependencies, name)
}

// Program is one parsed source file.
type Program struct {
	File         string
	Source       string
	Unit         *Unit
	Declarations []Declaration
	Uses         []*UseDeclaration
	Main         *Block         // Optional initializer block
	Scope        *symbols.Scope // Use aliases
	Includable   bool           // May be the target of an include expression
}

// Block is a lexical block with its own scope.
type Block struct {
	Token      token.Token
	Statements []Statement
	Scope      *symbols.Scope
}

func (b *Block) GetToken() token.Token               { return b.Token }
func (b *Block) AcceptStatement(v StmtVisitor) error { return v.VisitBlock(b) }
func (b *Block) statementNode()                       {}
