package analyzer

import (
	"fmt"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

// checkOverride verifies that m may replace super in an aggregated
// member table.
func (w *walker) checkOverride(m, super ast.Member) error {
	if m == super || m.DeclName() == config.ConstructorName {
		return nil
	}
	mb, sb := m.Base(), super.Base()
	name := m.DeclName()

	if mb.Modifier != sb.Modifier && !widens(sb.Modifier, mb.Modifier) {
		return w.fail(diagnostics.ErrIncompatibleOverrideModifier, mb.Token, name, sb.Modifier, mb.Modifier)
	}
	if m.MemberKind() != super.MemberKind() {
		return w.fail(diagnostics.ErrIncompatibleOverrideKind, mb.Token, name, super.MemberKind(), m.MemberKind())
	}
	if err := w.checkDeclaration(m); err != nil {
		return err
	}
	if err := w.checkDeclaration(super); err != nil {
		return err
	}
	if (mb.Hint() == nil) != (sb.Hint() == nil) {
		return w.fail(diagnostics.ErrOverrideTypeHintMismatch, mb.Token, name, hintPresence(sb))
	}

	if m.MemberKind() != ast.MethodMember {
		if !typesystem.Identical(mb.InferedType, sb.InferedType) {
			return w.fail(diagnostics.ErrIncompatibleOverrideSignature, mb.Token, name,
				fmt.Sprintf("type %s must be exactly %s", mb.InferedType, sb.InferedType))
		}
		return nil
	}
	return w.checkMethodOverride(m.(ast.Callable), super.(ast.Callable))
}

// widens allows protected or internal members to become public.
func widens(from, to ast.Modifier) bool {
	return to == ast.Public && (from == ast.Protected || from == ast.Internal)
}

func hintPresence(super *ast.DeclBase) string {
	if super.Hint() == nil {
		return "the overridden member has no type hint"
	}
	return "the overridden member is hinted " + super.Hint().String()
}

// checkMethodOverride: parameters are contravariant, extra parameters
// must be optional and the return type is covariant.
func (w *walker) checkMethodOverride(m, super ast.Callable) error {
	name := m.DeclName()
	tok := m.Base().Token
	mp, sp := m.Signature().Params, super.Signature().Params

	if len(mp) < len(sp) {
		return w.fail(diagnostics.ErrIncompatibleOverrideSignature, tok, name,
			fmt.Sprintf("expects %d parameters, overridden has %d", len(mp), len(sp)))
	}
	for _, extra := range mp[len(sp):] {
		if !extra.IsOptional() {
			return w.fail(diagnostics.ErrIncompatibleOverrideSignature, extra.Token, name,
				fmt.Sprintf("additional parameter '%s' must have a default value", extra.Name))
		}
	}
	for i, s := range sp {
		p := mp[i]
		if !overrideParamAccepts(p.InferedType, s.InferedType) {
			return w.fail(diagnostics.ErrIncompatibleOverrideSignature, p.Token, name,
				fmt.Sprintf("parameter '%s' of type %s does not accept %s", p.Name, p.InferedType, s.InferedType))
		}
	}

	mc, _ := m.Base().InferedType.(*typesystem.Callable)
	sc, _ := super.Base().InferedType.(*typesystem.Callable)
	if mc == nil || sc == nil || super.Base().Hint() == nil {
		return nil
	}
	mr, sr := substituteSelf(mc.Return, m), substituteSelf(sc.Return, m)
	if !typesystem.Accepts(sr, mr) {
		return w.fail(diagnostics.ErrIncompatibleOverrideSignature, tok, name,
			fmt.Sprintf("return type %s is wider than %s", mr, sr))
	}
	return nil
}

// overrideParamAccepts: the override may widen a parameter, e.g. to a union
// that includes the overridden type. UInt parameters may be widened to Int.
func overrideParamAccepts(override, super typesystem.Type) bool {
	if override == nil || super == nil {
		return true
	}
	if typesystem.Accepts(override, super) {
		return true
	}
	return super.Tag() == typesystem.TagUInt && typesystem.ContainsTag(override, typesystem.TagInt)
}

// substituteSelf resolves Self against the class owning fn.
func substituteSelf(t typesystem.Type, fn ast.Callable) typesystem.Type {
	k := classOf(fn)
	if k == nil || t == nil || !typesystem.ContainsTag(t, typesystem.TagSelf) {
		return t
	}
	return typesystem.Replace(t, typesystem.Self, instanceType(k))
}
