package typesystem

import (
	"strings"
)

// Tag discriminates the type lattice.
type Tag int

const (
	TagAny Tag = iota
	TagNone
	TagVoid
	TagBool
	TagInt
	TagUInt
	TagFloat
	TagString
	TagPureString
	TagBytes
	TagObject
	TagRegex
	TagXView
	TagArray
	TagDict
	TagUnion
	TagCallable
	TagMeta
	TagSelf
	TagClass
)

// Type is the interface for all types in our system.
// Nullability composes with every tag except Any, None and Void.
type Type interface {
	String() string
	Tag() Tag
	Nullable() bool
}

// Nominal is implemented by class-kindred declarations so that Class types
// can answer subtype questions without this package knowing the AST.
type Nominal interface {
	NominalName() string
	// QualifiedName tells apart equal names declared in different places.
	QualifiedName() string
	// Supertypes returns the resolved superclass and interfaces.
	Supertypes() []Nominal
}

// Basic types are singletons: identity is pointer identity.
type Basic struct {
	tag      Tag
	name     string
	nullable bool
}

func (b *Basic) Tag() Tag       { return b.tag }
func (b *Basic) Nullable() bool { return b.nullable }
func (b *Basic) String() string { return withSuffix(b.name, b.nullable) }

var (
	Any        = &Basic{tag: TagAny, name: "Any"}
	None       = &Basic{tag: TagNone, name: "None"}
	Void       = &Basic{tag: TagVoid, name: "Void"}
	Bool       = &Basic{tag: TagBool, name: "Bool"}
	Int        = &Basic{tag: TagInt, name: "Int"}
	UInt       = &Basic{tag: TagUInt, name: "UInt"}
	Float      = &Basic{tag: TagFloat, name: "Float"}
	String     = &Basic{tag: TagString, name: "String"}
	PureString = &Basic{tag: TagPureString, name: "PureString"}
	Bytes      = &Basic{tag: TagBytes, name: "Bytes"}
	Object     = &Basic{tag: TagObject, name: "Object"}
	Regex      = &Basic{tag: TagRegex, name: "Regex"}
	XView      = &Basic{tag: TagXView, name: "XView"}
)

var nullableBasics = map[*Basic]*Basic{}

func init() {
	for _, b := range []*Basic{Bool, Int, UInt, Float, String, PureString, Bytes, Object, Regex, XView} {
		nb := *b
		nb.nullable = true
		nullableBasics[b] = &nb
	}
}

func basicBase(b *Basic) *Basic {
	if !b.nullable {
		return b
	}
	for base, nb := range nullableBasics {
		if nb == b {
			return base
		}
	}
	return b
}

// Array is a homogeneous list container.
type Array struct {
	Elem     Type
	nullable bool
}

func NewArray(elem Type) *Array { return &Array{Elem: elem} }

func (a *Array) Tag() Tag       { return TagArray }
func (a *Array) Nullable() bool { return a.nullable }
func (a *Array) String() string {
	return withSuffix("Array<"+typeString(a.Elem)+">", a.nullable)
}

// Dict is a string/int keyed map.
type Dict struct {
	Elem     Type
	nullable bool
}

func NewDict(elem Type) *Dict { return &Dict{Elem: elem} }

func (d *Dict) Tag() Tag       { return TagDict }
func (d *Dict) Nullable() bool { return d.nullable }
func (d *Dict) String() string {
	return withSuffix("Dict<"+typeString(d.Elem)+">", d.nullable)
}

// Union members are non-nullable, non-union, and kept in canonical order.
// Build unions with UniteType rather than by hand.
type Union struct {
	Members  []Type
	nullable bool
}

func (u *Union) Tag() Tag       { return TagUnion }
func (u *Union) Nullable() bool { return u.nullable }
func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	s := strings.Join(parts, "|")
	if u.nullable {
		return "(" + s + ")?"
	}
	return s
}

// Callable is a function signature.
type Callable struct {
	Params   []Type
	Return   Type
	nullable bool
}

func NewCallable(params []Type, ret Type) *Callable {
	return &Callable{Params: params, Return: ret}
}

func (c *Callable) Tag() Tag       { return TagCallable }
func (c *Callable) Nullable() bool { return c.nullable }
func (c *Callable) String() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = typeString(p)
	}
	s := "(" + strings.Join(parts, ", ") + ") -> " + typeString(c.Return)
	if c.nullable {
		return "(" + s + ")?"
	}
	return s
}

// Meta is the type of a type, used for class-level access.
type Meta struct {
	Of Type
}

func NewMeta(of Type) *Meta { return &Meta{Of: of} }

func (m *Meta) Tag() Tag       { return TagMeta }
func (m *Meta) Nullable() bool { return false }
func (m *Meta) String() string { return "Meta<" + typeString(m.Of) + ">" }

// SelfType stands for the enclosing class until it is resolved.
type SelfType struct{}

var Self = &SelfType{}

func (s *SelfType) Tag() Tag       { return TagSelf }
func (s *SelfType) Nullable() bool { return false }
func (s *SelfType) String() string { return "Self" }

// Class is the nominal instance type of a class, interface or trait.
type Class struct {
	Decl     Nominal
	nullable bool
}

func NewClass(decl Nominal) *Class { return &Class{Decl: decl} }

func (c *Class) Tag() Tag       { return TagClass }
func (c *Class) Nullable() bool { return c.nullable }
func (c *Class) String() string { return withSuffix(c.Decl.NominalName(), c.nullable) }

// WithNullable returns t with the nullable flag set to nullable.
// Any, None and Void are returned unchanged.
func WithNullable(t Type, nullable bool) Type {
	if t == nil || t.Nullable() == nullable {
		return t
	}
	switch typ := t.(type) {
	case *Basic:
		switch typ.tag {
		case TagAny, TagNone, TagVoid:
			return typ
		}
		if nullable {
			return nullableBasics[basicBase(typ)]
		}
		return basicBase(typ)
	case *Array:
		return &Array{Elem: typ.Elem, nullable: nullable}
	case *Dict:
		return &Dict{Elem: typ.Elem, nullable: nullable}
	case *Union:
		return &Union{Members: typ.Members, nullable: nullable}
	case *Callable:
		return &Callable{Params: typ.Params, Return: typ.Return, nullable: nullable}
	case *Class:
		return &Class{Decl: typ.Decl, nullable: nullable}
	}
	return t
}

// NonNull strips the nullable flag.
func NonNull(t Type) Type {
	return WithNullable(t, false)
}

func withSuffix(s string, nullable bool) string {
	if nullable {
		return s + "?"
	}
	return s
}

func typeString(t Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
