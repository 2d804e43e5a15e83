package ast

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/funvibe/tea/internal/symbols"
	"github.com/funvibe/tea/internal/typesystem"
)

// ConstantDeclaration: const NAME [Type] = value
type ConstantDeclaration struct {
	DeclBase
	Value Expression
}

func (d *ConstantDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitConstantDeclaration(d)
}

// VariableDeclaration covers unit-level and block-scoped var.
type VariableDeclaration struct {
	DeclBase
	Value Expression
}

func (d *VariableDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitVariableDeclaration(d)
}

type ParameterDeclaration struct {
	DeclBase
	Value    Expression // Default value
	IsInout  bool
	Variadic bool
}

func (d *ParameterDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitParameterDeclaration(d)
}

// IsOptional reports whether callers may omit the parameter.
func (d *ParameterDeclaration) IsOptional() bool {
	return d.Value != nil || d.Variadic
}

// FuncBase is the signature and body shared by callables. The return hint
// lives in the owning DeclBase.
type FuncBase struct {
	Params      []*ParameterDeclaration
	Body        *Block         // nil for declare-only signatures
	Scope       *symbols.Scope // Parameter scope
	IsGenerator bool           // Set when the body yields
}

func (f *FuncBase) Signature() *FuncBase { return f }

type FunctionDeclaration struct {
	DeclBase
	FuncBase
}

func (d *FunctionDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitFunctionDeclaration(d)
}

// MemberKind classifies class members for override checks.
type MemberKind int

const (
	MethodMember MemberKind = iota
	PropertyMember
	ConstantMember
)

func (k MemberKind) String() string {
	switch k {
	case PropertyMember:
		return "property"
	case ConstantMember:
		return "constant"
	}
	return "method"
}

// Member is a declaration owned by a class-kindred declaration.
type Member interface {
	Declaration
	MemberKind() MemberKind
	OwnerClass() ClassKindred
}

// MemberBase records the owning class.
type MemberBase struct {
	Owner ClassKindred
}

func (m *MemberBase) OwnerClass() ClassKindred { return m.Owner }

type MethodDeclaration struct {
	DeclBase
	FuncBase
	MemberBase
}

func (d *MethodDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitMethodDeclaration(d)
}
func (d *MethodDeclaration) MemberKind() MemberKind { return MethodMember }

// MaskedDeclaration is a method whose body is a single call template.
type MaskedDeclaration struct {
	DeclBase
	FuncBase
	MemberBase
	Template Expression
}

func (d *MaskedDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitMaskedDeclaration(d)
}
func (d *MaskedDeclaration) MemberKind() MemberKind { return MethodMember }

type PropertyDeclaration struct {
	DeclBase
	MemberBase
	Value Expression
}

func (d *PropertyDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitPropertyDeclaration(d)
}
func (d *PropertyDeclaration) MemberKind() MemberKind { return PropertyMember }

type ClassConstantDeclaration struct {
	DeclBase
	MemberBase
	Value Expression
}

func (d *ClassConstantDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitClassConstantDeclaration(d)
}
func (d *ClassConstantDeclaration) MemberKind() MemberKind { return ConstantMember }

// ClassKindred is a class, interface, trait or builtin type class.
type ClassKindred interface {
	Declaration
	typesystem.Nominal
	Class() *ClassBase
}

// ClassBase is the member-aggregation state shared by class-kindred
// declarations.
type ClassBase struct {
	BaseNames     []*PlainIdentifier // Extended/implemented names as written
	TraitNames    []*PlainIdentifier
	Declarations  []Member       // Own members in source order
	Members       *symbols.Scope // Own members, built by the binder
	IsDeclareMode bool           // Signatures only; bodies are not required

	// Resolved by the checker.
	Inherits          ClassKindred
	Bases             []ClassKindred
	Traits            []*TraitDeclaration
	TraitMembers      *MemberTable
	AggregatedMembers *MemberTable
	headerResolved    bool
}

func (c *ClassBase) Class() *ClassBase { return c }

// HeaderResolved reports whether inherits/bases have been resolved.
func (c *ClassBase) HeaderResolved() bool { return c.headerResolved }
func (c *ClassBase) MarkHeaderResolved()  { c.headerResolved = true }

func (c *ClassBase) Supertypes() []typesystem.Nominal {
	var out []typesystem.Nominal
	if c.Inherits != nil {
		out = append(out, c.Inherits)
	}
	for _, b := range c.Bases {
		out = append(out, b)
	}
	return out
}

// OwnMember looks up a member declared directly or flattened in from a trait.
func (c *ClassBase) OwnMember(name string) (Member, bool) {
	if c.Members != nil {
		if sym, ok := c.Members.LookupLocal(name); ok {
			if m, ok := sym.Declaration().(Member); ok {
				return m, true
			}
		}
	}
	if c.TraitMembers != nil {
		return c.TraitMembers.Get(name)
	}
	return nil, false
}

// OwnMembers lists declared members in definition order.
func (c *ClassBase) OwnMembers() []Member {
	if c.Members == nil {
		return nil
	}
	var out []Member
	for _, sym := range c.Members.Symbols() {
		if m, ok := sym.Declaration().(Member); ok {
			out = append(out, m)
		}
	}
	return out
}

type ClassDeclaration struct {
	DeclBase
	ClassBase
	IsAbstract bool
}

func (d *ClassDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitClassDeclaration(d)
}
func (d *ClassDeclaration) NominalName() string { return d.Name }

type InterfaceDeclaration struct {
	DeclBase
	ClassBase
}

func (d *InterfaceDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitInterfaceDeclaration(d)
}
func (d *InterfaceDeclaration) NominalName() string { return d.Name }

type TraitDeclaration struct {
	DeclBase
	ClassBase
}

func (d *TraitDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitTraitDeclaration(d)
}
func (d *TraitDeclaration) NominalName() string { return d.Name }

// BuiltinTypeClassDeclaration lends members to a basic type, e.g. String.
type BuiltinTypeClassDeclaration struct {
	DeclBase
	ClassBase
	Type typesystem.Type
}

func (d *BuiltinTypeClassDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitBuiltinTypeClassDeclaration(d)
}
func (d *BuiltinTypeClassDeclaration) NominalName() string { return d.Name }

// ObjectMember is one key of an object literal.
type ObjectMember struct {
	DeclBase
	Value Expression
}

func (d *ObjectMember) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitObjectMember(d)
}

// UseDeclaration is the placeholder an import alias points to until the
// checker resolves it: use Target { Source as Name }.
type UseDeclaration struct {
	DeclBase
	Target string // Unit name
	Source string // Name inside the target unit
}

func (d *UseDeclaration) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitUseDeclaration(d)
}

// MemberTable is an ordered name -> member map.
type MemberTable struct {
	order   []string
	members map[string]Member
}

func NewMemberTable() *MemberTable {
	return &MemberTable{members: make(map[string]Member)}
}

func (t *MemberTable) Get(name string) (Member, bool) {
	if t == nil {
		return nil, false
	}
	m, ok := t.members[name]
	return m, ok
}

// Set inserts or replaces name, keeping its first position.
func (t *MemberTable) Set(name string, m Member) {
	if _, exists := t.members[name]; !exists {
		t.order = append(t.order, name)
	}
	t.members[name] = m
}

func (t *MemberTable) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

func (t *MemberTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Clone copies the table so the copy can be extended independently.
func (t *MemberTable) Clone() *MemberTable {
	c := NewMemberTable()
	if t == nil {
		return c
	}
	c.order = slices.Clone(t.order)
	maps.Copy(c.members, t.members)
	return c
}
