package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smasher164/xid"
	"gopkg.in/yaml.v3"
)

// Options configures one checker run.
type Options struct {
	// WeakMode relaxes checks for loosely-typed foreign code: unknown
	// symbols and members become virtual declarations typed Any.
	WeakMode bool `yaml:"weak_mode"`

	// WellKnown names the builtin interfaces the checker gives special
	// meaning to.
	WellKnown WellKnownNames `yaml:"well_known"`

	// Units limits checking to the named units. Empty means all.
	Units []string `yaml:"units,omitempty"`
}

// WellKnownNames are looked up in the builtin unit.
type WellKnownNames struct {
	// Iterator is the return type of unhinted generators.
	Iterator string `yaml:"iterator"`

	// Exception is the root of throwable classes.
	Exception string `yaml:"exception"`

	// ViewAcceptor marks classes whose instances may be UI children.
	ViewAcceptor string `yaml:"view_acceptor"`
}

// DefaultOptions is strict mode with the standard builtin names.
func DefaultOptions() Options {
	return Options{
		WellKnown: WellKnownNames{
			Iterator:     IteratorName,
			Exception:    ExceptionName,
			ViewAcceptor: ViewAcceptorName,
		},
	}
}

// LoadOptions reads and parses an options file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options %s: %w", path, err)
	}
	return ParseOptions(data, path)
}

// ParseOptions parses options content from bytes. Omitted fields keep
// their defaults. The path argument is used only for error messages.
func ParseOptions(data []byte, path string) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	opts.setDefaults()
	if err := opts.validate(path); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// FindOptions searches for an options file starting from dir and walking
// up to parent directories. It returns "" when none exists.
func FindOptions(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range OptionsFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// setDefaults fills names explicitly set to "".
func (o *Options) setDefaults() {
	def := DefaultOptions().WellKnown
	if o.WellKnown.Iterator == "" {
		o.WellKnown.Iterator = def.Iterator
	}
	if o.WellKnown.Exception == "" {
		o.WellKnown.Exception = def.Exception
	}
	if o.WellKnown.ViewAcceptor == "" {
		o.WellKnown.ViewAcceptor = def.ViewAcceptor
	}
}

func (o *Options) validate(path string) error {
	names := map[string]string{
		"iterator":      o.WellKnown.Iterator,
		"exception":     o.WellKnown.Exception,
		"view_acceptor": o.WellKnown.ViewAcceptor,
	}
	for _, key := range []string{"iterator", "exception", "view_acceptor"} {
		if !IsIdentifier(names[key]) {
			return fmt.Errorf("%s: well_known.%s: %q is not a valid identifier", path, key, names[key])
		}
	}
	seen := make(map[string]bool)
	for i, u := range o.Units {
		if u == "" {
			return fmt.Errorf("%s: units[%d]: empty unit name", path, i)
		}
		if seen[u] {
			return fmt.Errorf("%s: units[%d]: duplicate unit %q", path, i, u)
		}
		seen[u] = true
	}
	return nil
}

// IsIdentifier reports whether name is a valid source identifier:
// a letter or underscore followed by Unicode identifier characters.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if r != '_' && !xid.Start(r) {
				return false
			}
			continue
		}
		if !xid.Continue(r) {
			return false
		}
	}
	return true
}

// Wants reports whether unit is selected by the Units filter.
func (o Options) Wants(unit string) bool {
	if len(o.Units) == 0 {
		return true
	}
	for _, u := range o.Units {
		if u == unit {
			return true
		}
	}
	return false
}
