package analyzer

import (
	"io"
	"log"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/symbols"
	"github.com/funvibe/tea/internal/token"
	"github.com/funvibe/tea/internal/typesystem"
)

// UnitResolver finds other units by name for use declarations.
type UnitResolver interface {
	Unit(name string) (*ast.Unit, bool)
}

// Units is a UnitResolver over a fixed set.
type Units map[string]*ast.Unit

func (u Units) Unit(name string) (*ast.Unit, bool) {
	unit, ok := u[name]
	return unit, ok
}

// WellKnown holds the resolved builtin interfaces with special meaning.
// A nil entry disables the rule that depends on it.
type WellKnown struct {
	Iterator     ast.ClassKindred
	Exception    ast.ClassKindred
	ViewAcceptor ast.ClassKindred
}

// ResolveWellKnown looks up the configured names in the builtin unit.
func ResolveWellKnown(builtin *ast.Unit, names config.WellKnownNames) WellKnown {
	var wk WellKnown
	if builtin == nil || builtin.Scope == nil {
		return wk
	}
	find := func(name string) ast.ClassKindred {
		if sym, ok := builtin.Scope.LookupLocal(name); ok {
			if k, ok := sym.Declaration().(ast.ClassKindred); ok {
				return k
			}
		}
		return nil
	}
	wk.Iterator = find(names.Iterator)
	wk.Exception = find(names.Exception)
	wk.ViewAcceptor = find(names.ViewAcceptor)
	return wk
}

// Analyzer checks one unit. Checkers of different units may share
// declarations: every check is idempotent and guarded per declaration.
type Analyzer struct {
	unit      *ast.Unit
	builtin   *ast.Unit
	units     UnitResolver
	wellKnown WellKnown
	weak      bool
	logger    *log.Logger

	// virtualMembers holds weak-mode members of classes this analyzer
	// does not own.
	virtualMembers map[ast.ClassKindred]*ast.MemberTable
}

// New creates an Analyzer for unit.
func New(unit *ast.Unit, opts config.Options) *Analyzer {
	return &Analyzer{
		unit:   unit,
		weak:   opts.WeakMode,
		units:  Units{},
		logger: log.New(io.Discard, "", 0),

		virtualMembers: make(map[ast.ClassKindred]*ast.MemberTable),
	}
}

// SetBuiltin installs the builtin unit and resolves the well-known
// interfaces named in names.
func (a *Analyzer) SetBuiltin(builtin *ast.Unit, names config.WellKnownNames) {
	a.builtin = builtin
	a.wellKnown = ResolveWellKnown(builtin, names)
}

func (a *Analyzer) SetUnits(r UnitResolver) {
	a.units = r
}

func (a *Analyzer) SetLogger(l *log.Logger) {
	if l != nil {
		a.logger = l
	}
}

func (a *Analyzer) newWalker() *walker {
	return &walker{
		Analyzer: a,
		included: make(map[*ast.Program]bool),
		narrowed: make(map[ast.Declaration]typesystem.Type),
	}
}

// CheckUnit resolves the unit's use declarations, then checks every
// declaration and every main block. It stops at the first error.
func (a *Analyzer) CheckUnit() error {
	a.logger.Printf("checking unit %s (%d programs)", a.unit.Name, len(a.unit.Programs))
	w := a.newWalker()
	if err := w.resolveUses(a.unit); err != nil {
		return err
	}
	for _, p := range a.unit.Programs {
		for _, d := range p.Declarations {
			if err := w.checkDeclaration(d); err != nil {
				return err
			}
		}
	}
	for _, p := range a.unit.Programs {
		if p.Main == nil || p.Includable || w.included[p] {
			continue
		}
		if err := w.checkMain(p); err != nil {
			return err
		}
	}
	a.logger.Printf("unit %s checked", a.unit.Name)
	return nil
}

// ResolveUses binds every use declaration of the unit to its target and
// records the unit dependencies.
func (a *Analyzer) ResolveUses() error {
	return a.newWalker().resolveUses(a.unit)
}

// CheckDeclaration checks a single declaration on demand.
func (a *Analyzer) CheckDeclaration(d ast.Declaration) error {
	return a.newWalker().checkDeclaration(d)
}

// InferExpression infers e in the context of program p.
func (a *Analyzer) InferExpression(p *ast.Program, e ast.Expression) (typesystem.Type, error) {
	w := a.newWalker()
	defer w.enter(cursor{program: p})()
	return w.infer(e)
}

// cursor is the position of the walker: the program, the innermost scope,
// the enclosing callable and class, and the return frame.
type cursor struct {
	program   *ast.Program
	scope     *symbols.Scope
	function  ast.Callable
	class     ast.ClassKindred
	frame     *frame
	loopDepth int
}

// frame collects what a callable body produces.
type frame struct {
	decl     ast.Callable
	expected typesystem.Type // Declared return type, nil when unhinted
	returns  []typesystem.Type
	bare     bool // A return without a value was seen
}

var (
	_ ast.ExprVisitor = (*walker)(nil)
	_ ast.StmtVisitor = (*walker)(nil)
	_ ast.DeclVisitor = (*walker)(nil)
)

type walker struct {
	*Analyzer
	ctx      cursor
	included map[*ast.Program]bool
	// narrowed keeps the pre-narrowing type of declarations whose
	// InferedType is temporarily replaced inside a branch.
	narrowed map[ast.Declaration]typesystem.Type
}

// enter switches the cursor and returns the restore function.
// Use as: defer w.enter(c)()
func (w *walker) enter(c cursor) func() {
	saved := w.ctx
	w.ctx = c
	return func() { w.ctx = saved }
}

// enterScope pushes a nested block scope.
func (w *walker) enterScope(s *symbols.Scope) func() {
	saved := w.ctx
	w.ctx.scope = s
	return func() { w.ctx = saved }
}

func (w *walker) fail(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) error {
	err := diagnostics.NewError(code, tok, args...)
	if w.ctx.program != nil {
		err.InFile(w.ctx.program.File)
		if !err.Token.HasLocation() {
			err.Token = err.Token.WithLocation(w.ctx.program.Source)
		}
	}
	return err
}

func (w *walker) checkMain(p *ast.Program) error {
	w.included[p] = true
	defer w.enter(cursor{program: p})()
	return w.checkStatement(p.Main)
}
