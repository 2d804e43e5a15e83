package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.WeakMode)
	assert.Equal(t, "Iterator", opts.WellKnown.Iterator)
	assert.Equal(t, "Exception", opts.WellKnown.Exception)
	assert.Equal(t, "IView", opts.WellKnown.ViewAcceptor)
}

func TestParseOptions(t *testing.T) {
	data := []byte(`
weak_mode: true
well_known:
  exception: Throwable
units: [app, lib]
`)
	opts, err := ParseOptions(data, "tea.yaml")
	if assert.NoError(t, err) {
		assert.True(t, opts.WeakMode)
		assert.Equal(t, "Throwable", opts.WellKnown.Exception)
		assert.Equal(t, "Iterator", opts.WellKnown.Iterator)
		assert.Equal(t, []string{"app", "lib"}, opts.Units)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "weak_mode: [\n"},
		{"identifier", "well_known:\n  iterator: \"1abc\"\n"},
		{"empty unit", "units: [\"\"]\n"},
		{"duplicate unit", "units: [a, a]\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseOptions([]byte(test.data), "tea.yaml")
			assert.Error(t, err)
		})
	}
}

func TestParseOptionsEmptyNameFallsBack(t *testing.T) {
	opts, err := ParseOptions([]byte("well_known:\n  view_acceptor: \"\"\n"), "tea.yaml")
	if assert.NoError(t, err) {
		assert.Equal(t, ViewAcceptorName, opts.WellKnown.ViewAcceptor)
	}
}

func TestLoadAndFindOptions(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "app")
	assert.NoError(t, os.MkdirAll(nested, 0o755))
	path := filepath.Join(root, "tea.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("weak_mode: true\n"), 0o644))

	found, err := FindOptions(nested)
	if assert.NoError(t, err) {
		assert.Equal(t, path, found)
	}

	opts, err := LoadOptions(found)
	if assert.NoError(t, err) {
		assert.True(t, opts.WeakMode)
	}

	_, err = LoadOptions(filepath.Join(root, "missing.yaml"))
	assert.Error(t, err)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("name"))
	assert.True(t, IsIdentifier("_private"))
	assert.True(t, IsIdentifier("größe"))
	assert.True(t, IsIdentifier("x1"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("a-b"))
	assert.False(t, IsIdentifier("a b"))
}

func TestWants(t *testing.T) {
	assert.True(t, Options{}.Wants("any"))
	opts := Options{Units: []string{"app"}}
	assert.True(t, opts.Wants("app"))
	assert.False(t, opts.Wants("lib"))
}
