package ast

import (
	"strings"

	"github.com/funvibe/tea/internal/symbols"
	"github.com/funvibe/tea/internal/token"
)

// TypeExpr is a type annotation as written in source.
type TypeExpr interface {
	Node
	String() string
	typeExprNode()
}

// NamedType is a builtin type name or a reference to a class-kindred
// declaration.
type NamedType struct {
	Token  token.Token
	Name   string
	Symbol *symbols.Symbol
}

func (t *NamedType) GetToken() token.Token { return t.Token }
func (t *NamedType) String() string        { return t.Name }
func (t *NamedType) typeExprNode()         {}

// ArrayType: Elem[]
type ArrayType struct {
	Token token.Token
	Elem  TypeExpr
}

func (t *ArrayType) GetToken() token.Token { return t.Token }
func (t *ArrayType) String() string        { return t.Elem.String() + "[]" }
func (t *ArrayType) typeExprNode()         {}

// DictType: Elem.{}
type DictType struct {
	Token token.Token
	Elem  TypeExpr
}

func (t *DictType) GetToken() token.Token { return t.Token }
func (t *DictType) String() string        { return t.Elem.String() + ".{}" }
func (t *DictType) typeExprNode()         {}

type UnionType struct {
	Token   token.Token
	Members []TypeExpr
}

func (t *UnionType) GetToken() token.Token { return t.Token }
func (t *UnionType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, "|")
}
func (t *UnionType) typeExprNode() {}

// NullableType: Inner?
type NullableType struct {
	Token token.Token
	Inner TypeExpr
}

func (t *NullableType) GetToken() token.Token { return t.Token }
func (t *NullableType) String() string        { return t.Inner.String() + "?" }
func (t *NullableType) typeExprNode()         {}

// CallableType: (Params) Return
type CallableType struct {
	Token  token.Token
	Params []TypeExpr
	Return TypeExpr
}

func (t *CallableType) GetToken() token.Token { return t.Token }
func (t *CallableType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	ret := "Void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") " + ret
}
func (t *CallableType) typeExprNode() {}

// MetaType refers to a class itself rather than its instances.
type MetaType struct {
	Token token.Token
	Of    TypeExpr
}

func (t *MetaType) GetToken() token.Token { return t.Token }
func (t *MetaType) String() string        { return "Meta<" + t.Of.String() + ">" }
func (t *MetaType) typeExprNode()         {}
