package analyzer

import (
	"testing"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
)

func widget() *ast.ClassDeclaration {
	return ast.Class("Widget", []string{"IView"},
		ast.Method("render", nil, ast.Named("XView"), block(ast.Return(&ast.XTag{Name: "div"}))),
	)
}

func TestViewChildren(t *testing.T) {
	tests := []struct {
		name  string
		child ast.Expression
		code  diagnostics.ErrorCode
	}{
		{"text", ast.Str("hello"), ""},
		{"number", ast.Int("5"), ""},
		{"nested tag", &ast.XTag{Name: "span"}, ""},
		{"view instance", ast.New("Widget"), ""},
		{"array of children", ast.Array(ast.Str("a"), &ast.XTag{Name: "b"}), ""},
		{"none", ast.None(), ""},
		{"dict", ast.Dict(ast.Str("a"), ast.Int("1")), diagnostics.ErrTypeIncompatible},
		{"plain instance", ast.New("Plain"), diagnostics.ErrTypeIncompatible},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tag := &ast.XTag{Name: "div", Children: []ast.Expression{test.child}}
			err := check(t, program(block(ast.ExprStmt(tag)), widget(), ast.Class("Plain", nil)))
			if test.code == "" {
				expectNoCheckErrors(t, err)
				return
			}
			expectCheckError(t, err, test.code)
		})
	}
}

func TestViewReturnAcceptsViewChildren(t *testing.T) {
	fn := ast.Func("label", nil, ast.Named("XView"), block(ast.Return(ast.Str("text"))))
	expectNoCheckErrors(t, check(t, program(nil, fn)))
}

func TestWellKnownNamesAreConfigurable(t *testing.T) {
	opts := config.DefaultOptions()
	opts.WellKnown.ViewAcceptor = "Missing"
	tag := &ast.XTag{Name: "div", Children: []ast.Expression{ast.New("Widget")}}
	err := checkWith(t, opts, program(block(ast.ExprStmt(tag)), widget()))
	expectCheckError(t, err, diagnostics.ErrTypeIncompatible)
}

func TestResolveWellKnown(t *testing.T) {
	wk := ResolveWellKnown(newBuiltin(t), config.DefaultOptions().WellKnown)
	for name, k := range map[string]ast.ClassKindred{
		"Iterator":  wk.Iterator,
		"Exception": wk.Exception,
		"IView":     wk.ViewAcceptor,
	} {
		if k == nil || k.DeclName() != name {
			t.Errorf("expected %s to be resolved, got %v", name, k)
		}
	}
	if ResolveWellKnown(nil, config.DefaultOptions().WellKnown) != (WellKnown{}) {
		t.Errorf("a missing builtin unit resolves nothing")
	}
}
