package symbols

import (
	"fmt"

	"github.com/funvibe/tea/internal/token"
)

// Declaration is the minimal view of an AST declaration that a symbol
// can point to.
type Declaration interface {
	DeclName() string
	GetToken() token.Token
}

// BindingState tells whether a symbol already points at its real declaration.
type BindingState int

const (
	Resolved   BindingState = iota
	Unresolved              // Points at a use/import placeholder
)

// Symbol is a named, mutable binding.
type Symbol struct {
	Name  string
	state BindingState
	decl  Declaration
}

// New binds name directly to decl.
func New(name string, decl Declaration) *Symbol {
	return &Symbol{Name: name, state: Resolved, decl: decl}
}

// NewDeferred binds name to a placeholder that is resolved later.
func NewDeferred(name string, placeholder Declaration) *Symbol {
	return &Symbol{Name: name, state: Unresolved, decl: placeholder}
}

// Declaration returns the current target: the real declaration once
// resolved, the placeholder before.
func (s *Symbol) Declaration() Declaration {
	return s.decl
}

func (s *Symbol) State() BindingState {
	return s.state
}

func (s *Symbol) IsResolved() bool {
	return s.state == Resolved
}

// Resolve performs the single Unresolved -> Resolved transition.
func (s *Symbol) Resolve(target Declaration) error {
	if s.state == Resolved {
		return fmt.Errorf("symbol %s is already resolved", s.Name)
	}
	if target == nil {
		return fmt.Errorf("symbol %s cannot resolve to nothing", s.Name)
	}
	s.decl = target
	s.state = Resolved
	return nil
}

func (s *Symbol) String() string {
	if s.state == Unresolved {
		return s.Name + " (unresolved)"
	}
	return s.Name
}
