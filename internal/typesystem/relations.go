package typesystem

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Accepts reports whether a value of type source may be stored where target
// is expected. Primitive identity is the fast path; structural types are
// compared recursively.
func Accepts(target, source Type) bool {
	if target == nil || source == nil {
		return false
	}
	if target == source || target.Tag() == TagAny {
		return true
	}
	if source.Tag() == TagNone {
		switch target.Tag() {
		case TagNone, TagVoid:
			return true
		}
		return target.Nullable()
	}
	if source.Nullable() && !target.Nullable() {
		return false
	}
	if su, ok := source.(*Union); ok {
		for _, m := range su.Members {
			if !Accepts(target, m) {
				return false
			}
		}
		return true
	}
	if tu, ok := target.(*Union); ok {
		s := NonNull(source)
		for _, m := range tu.Members {
			if Accepts(m, s) {
				return true
			}
		}
		return false
	}
	return acceptsBase(NonNull(target), NonNull(source))
}

func acceptsBase(target, source Type) bool {
	switch t := target.(type) {
	case *Array:
		s, ok := source.(*Array)
		return ok && Accepts(t.Elem, s.Elem)
	case *Dict:
		s, ok := source.(*Dict)
		return ok && Accepts(t.Elem, s.Elem)
	case *Callable:
		s, ok := source.(*Callable)
		if !ok || len(s.Params) > len(t.Params) {
			return false
		}
		for i, p := range s.Params {
			if !Accepts(p, t.Params[i]) {
				return false
			}
		}
		if t.Return == nil || t.Return.Tag() == TagVoid {
			return true
		}
		return Accepts(t.Return, s.Return)
	case *Meta:
		s, ok := source.(*Meta)
		return ok && Accepts(t.Of, s.Of)
	case *Class:
		s, ok := source.(*Class)
		return ok && IsSubtypeOf(s.Decl, t.Decl)
	case *SelfType:
		return source.Tag() == TagSelf
	}

	switch target.Tag() {
	case TagInt:
		return source.Tag() == TagInt || source.Tag() == TagUInt
	case TagFloat:
		switch source.Tag() {
		case TagFloat, TagInt, TagUInt:
			return true
		}
	case TagString:
		return source.Tag() == TagString || source.Tag() == TagPureString
	case TagObject:
		return source.Tag() == TagObject || source.Tag() == TagClass
	case TagVoid:
		return source.Tag() == TagVoid
	default:
		return target.Tag() == source.Tag()
	}
	return false
}

// IsSubtypeOf walks the nominal hierarchy of sub looking for super.
func IsSubtypeOf(sub, super Nominal) bool {
	return isSubtypeOf(sub, super, map[Nominal]bool{})
}

func isSubtypeOf(sub, super Nominal, seen map[Nominal]bool) bool {
	if sub == super {
		return true
	}
	if seen[sub] {
		return false
	}
	seen[sub] = true
	for _, parent := range sub.Supertypes() {
		if parent != nil && isSubtypeOf(parent, super, seen) {
			return true
		}
	}
	return false
}

// Identical is structural equality. Nullability must match and union
// members are compared as sets.
func Identical(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Tag() != b.Tag() || a.Nullable() != b.Nullable() {
		return false
	}
	switch x := a.(type) {
	case *Basic:
		return false
	case *Array:
		return Identical(x.Elem, b.(*Array).Elem)
	case *Dict:
		return Identical(x.Elem, b.(*Dict).Elem)
	case *Meta:
		return Identical(x.Of, b.(*Meta).Of)
	case *SelfType:
		return true
	case *Class:
		return x.Decl == b.(*Class).Decl
	case *Callable:
		y := b.(*Callable)
		if len(x.Params) != len(y.Params) || !Identical(x.Return, y.Return) {
			return false
		}
		for i := range x.Params {
			if !Identical(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true
	case *Union:
		y := b.(*Union)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for _, m := range x.Members {
			if !containsIdentical(y.Members, m) {
				return false
			}
		}
		return true
	}
	return false
}

func containsIdentical(list []Type, t Type) bool {
	return slices.ContainsFunc(list, func(m Type) bool { return Identical(m, t) })
}

// UniteType joins two types. Related types collapse to the wider one,
// unrelated ones form a union. The result does not depend on argument order.
func UniteType(a, b Type) Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Tag() == TagAny || b.Tag() == TagAny {
		return Any
	}
	if a.Tag() == TagNone {
		if b.Tag() == TagNone {
			return None
		}
		return WithNullable(b, true)
	}
	if b.Tag() == TagNone {
		return WithNullable(a, true)
	}
	nullable := a.Nullable() || b.Nullable()
	members := append(flatten(NonNull(a)), flatten(NonNull(b))...)
	return WithNullable(newUnion(members), nullable)
}

func flatten(t Type) []Type {
	if u, ok := t.(*Union); ok {
		return slices.Clone(u.Members)
	}
	return []Type{t}
}

// newUnion canonicalizes members: sorted, deduplicated and with every member
// dropped that another member already accepts.
func newUnion(members []Type) Type {
	slices.SortStableFunc(members, func(x, y Type) int {
		if c := strings.Compare(x.String(), y.String()); c != 0 {
			return c
		}
		return strings.Compare(qualifier(x), qualifier(y))
	})
	kept := make([]Type, 0, len(members))
	for i, m := range members {
		absorbed := false
		for j, n := range members {
			if i == j {
				continue
			}
			if Identical(m, n) || Accepts(n, m) {
				// Mutually accepting members keep the first in canonical order.
				if Accepts(m, n) && i < j {
					continue
				}
				absorbed = true
				break
			}
		}
		if !absorbed {
			kept = append(kept, m)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return &Union{Members: kept}
}

// qualifier orders members whose names collide, such as equally named
// classes of different units.
func qualifier(t Type) string {
	switch x := t.(type) {
	case *Class:
		return x.Decl.QualifiedName()
	case *Array:
		return qualifier(x.Elem)
	case *Dict:
		return qualifier(x.Elem)
	case *Meta:
		return qualifier(x.Of)
	}
	return ""
}

// ReduceTypes folds candidate types (return statements, ternary branches,
// collection elements) into one. None entries only contribute nullability and
// any Any candidate forces Any. A nil result means nothing was inferred.
func ReduceTypes(types []Type) Type {
	nullable := false
	var result Type
	for _, t := range types {
		if t == nil {
			continue
		}
		switch t.Tag() {
		case TagNone:
			nullable = true
			continue
		case TagAny:
			return Any
		}
		if result == nil {
			result = t
			continue
		}
		result = UniteType(result, t)
	}
	if result == nil {
		if nullable {
			return None
		}
		return nil
	}
	if nullable {
		return WithNullable(result, true)
	}
	return result
}

// Without removes from t every union member accepted by removed.
// It returns nil when nothing remains.
func Without(t, removed Type) Type {
	u, ok := NonNull(t).(*Union)
	if !ok {
		if Accepts(removed, NonNull(t)) {
			return nil
		}
		return t
	}
	var rest []Type
	for _, m := range u.Members {
		if !Accepts(removed, m) {
			rest = append(rest, m)
		}
	}
	switch len(rest) {
	case 0:
		return nil
	case 1:
		return WithNullable(rest[0], t.Nullable())
	}
	return WithNullable(newUnion(rest), t.Nullable())
}

// Replace substitutes union members (or t itself) identical to from.
func Replace(t, from, to Type) Type {
	if Identical(NonNull(t), from) {
		return WithNullable(to, t.Nullable())
	}
	u, ok := NonNull(t).(*Union)
	if !ok {
		return t
	}
	members := make([]Type, len(u.Members))
	for i, m := range u.Members {
		if Identical(m, from) {
			members[i] = to
		} else {
			members[i] = m
		}
	}
	return WithNullable(newUnion(members), t.Nullable())
}

// Members lists the non-null members of t (a single entry for non-unions).
func Members(t Type) []Type {
	return flatten(NonNull(t))
}

// IsNumber reports Int, UInt, Float or a union made only of those.
func IsNumber(t Type) bool {
	if t == nil || t.Nullable() {
		return false
	}
	for _, m := range Members(t) {
		switch m.Tag() {
		case TagInt, TagUInt, TagFloat:
		default:
			return false
		}
	}
	return true
}

// ContainsTag reports whether t or one of its union members has tag.
func ContainsTag(t Type, tag Tag) bool {
	if t == nil {
		return false
	}
	return slices.ContainsFunc(Members(t), func(m Type) bool { return m.Tag() == tag })
}

// IsStringable reports types that concatenate to a string.
func IsStringable(t Type) bool {
	if t == nil || t.Nullable() {
		return false
	}
	for _, m := range Members(t) {
		switch m.Tag() {
		case TagString, TagPureString, TagInt, TagUInt, TagFloat, TagBool:
		default:
			return false
		}
	}
	return true
}

// IsPureString reports the constant-string refinement.
func IsPureString(t Type) bool {
	return t != nil && t.Tag() == TagPureString && !t.Nullable()
}
