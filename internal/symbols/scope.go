package symbols

// ScopeType tells what introduced a scope.
type ScopeType int

const (
	ScopeBuiltin ScopeType = iota // Well-known names shared by every unit
	ScopeUnit                     // Global to a compilation module
	ScopeProgram                  // One source file: use aliases
	ScopeClass                    // Members of a class, interface or trait
	ScopeFunction                 // Parameters of a function or lambda
	ScopeBlock
)

func (t ScopeType) String() string {
	switch t {
	case ScopeBuiltin:
		return "builtin"
	case ScopeUnit:
		return "unit"
	case ScopeProgram:
		return "program"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	}
	return "unknown"
}

// Scope maps names to symbols and chains to an enclosing scope.
type Scope struct {
	kind  ScopeType
	outer *Scope
	store map[string]*Symbol
	names []string
}

func NewScope(kind ScopeType, outer *Scope) *Scope {
	return &Scope{
		kind:  kind,
		outer: outer,
		store: make(map[string]*Symbol),
	}
}

func (s *Scope) Kind() ScopeType { return s.kind }

// Outer returns the enclosing scope, or nil.
func (s *Scope) Outer() *Scope { return s.outer }

// Define adds sym. It returns false and leaves the scope unchanged when the
// name is already defined locally.
func (s *Scope) Define(sym *Symbol) bool {
	if _, exists := s.store[sym.Name]; exists {
		return false
	}
	s.store[sym.Name] = sym
	s.names = append(s.names, sym.Name)
	return true
}

// LookupLocal only looks at this scope. A nil scope holds nothing.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	if s == nil {
		return nil, false
	}
	sym, ok := s.store[name]
	return sym, ok
}

// Lookup walks outward until the name is found.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if sym, ok := cur.store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Names returns local names in definition order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Symbols returns local symbols in definition order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.store[n])
	}
	return out
}

func (s *Scope) Len() int { return len(s.names) }
