package typesystem

import (
	"testing"

	"github.com/kr/pretty"
)

type fakeClass struct {
	unit    string
	name    string
	parents []Nominal
}

func (f *fakeClass) NominalName() string   { return f.name }
func (f *fakeClass) QualifiedName() string { return f.unit + ":" + f.name }
func (f *fakeClass) Supertypes() []Nominal { return f.parents }

func TestAcceptsPrimitives(t *testing.T) {
	tests := []struct {
		target, source Type
		want           bool
	}{
		{Int, Int, true},
		{Int, UInt, true},
		{UInt, Int, false},
		{Float, Int, true},
		{Float, UInt, true},
		{Int, Float, false},
		{String, PureString, true},
		{PureString, String, false},
		{Any, NewArray(Int), true},
		{Int, Any, false},
		{Int, None, false},
		{WithNullable(Int, true), None, true},
		{Int, WithNullable(Int, true), false},
		{WithNullable(Int, true), Int, true},
		{Void, None, true},
		{Bool, Int, false},
	}
	for _, tt := range tests {
		if got := Accepts(tt.target, tt.source); got != tt.want {
			t.Errorf("Accepts(%s, %s) = %v, want %v", tt.target, tt.source, got, tt.want)
		}
	}
}

func TestAcceptsContainers(t *testing.T) {
	if !Accepts(NewArray(Int), NewArray(UInt)) {
		t.Errorf("Array<Int> should accept Array<UInt>")
	}
	if Accepts(NewArray(Int), NewDict(Int)) {
		t.Errorf("Array must not accept Dict")
	}
	if !Accepts(NewDict(Any), NewDict(String)) {
		t.Errorf("Dict<Any> should accept Dict<String>")
	}
	f := NewCallable([]Type{Int}, String)
	if !Accepts(f, NewCallable([]Type{Int}, PureString)) {
		t.Errorf("covariant return should be accepted")
	}
	if Accepts(f, NewCallable([]Type{UInt}, String)) {
		t.Errorf("narrower parameter must be rejected")
	}
	if !Accepts(f, NewCallable(nil, String)) {
		t.Errorf("callables ignoring arguments are accepted")
	}
	if !Accepts(NewCallable([]Type{Int}, Void), NewCallable([]Type{Int}, Int)) {
		t.Errorf("void-returning target ignores the result")
	}
}

func TestAcceptsUnions(t *testing.T) {
	intOrString := UniteType(Int, String)
	if !Accepts(intOrString, UInt) {
		t.Errorf("Int|String should accept UInt")
	}
	if Accepts(intOrString, Float) {
		t.Errorf("Int|String must not accept Float")
	}
	if !Accepts(UniteType(Float, String), UniteType(Int, PureString)) {
		t.Errorf("every member of the source must be accepted")
	}
	if Accepts(Int, intOrString) {
		t.Errorf("Int must not accept Int|String")
	}
}

func TestAcceptsClasses(t *testing.T) {
	iface := &fakeClass{name: "Shape"}
	base := &fakeClass{name: "Base"}
	derived := &fakeClass{name: "Circle", parents: []Nominal{base, iface}}
	if !Accepts(NewClass(iface), NewClass(derived)) {
		t.Errorf("interface should accept implementing class")
	}
	if !Accepts(NewClass(base), NewClass(derived)) {
		t.Errorf("superclass should accept subclass")
	}
	if Accepts(NewClass(derived), NewClass(base)) {
		t.Errorf("subclass must not accept superclass")
	}
	if !Accepts(Object, NewClass(base)) {
		t.Errorf("Object accepts instances")
	}
	if !Accepts(NewMeta(NewClass(base)), NewMeta(NewClass(derived))) {
		t.Errorf("meta types follow their instance types")
	}
}

func TestUniteType(t *testing.T) {
	if got := UniteType(Int, UInt); got != Int {
		t.Errorf("UniteType(Int, UInt) = %s", got)
	}
	got := UniteType(Int, String)
	u, ok := got.(*Union)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("expected a two-member union, got %s", got)
	}
	if got.String() != "Int|String" {
		t.Errorf("union string = %q", got.String())
	}
	if UniteType(Int, Any) != Any {
		t.Errorf("Any absorbs everything")
	}
	if !Identical(UniteType(None, Int), WithNullable(Int, true)) {
		t.Errorf("None makes the other side nullable")
	}
	wide := UniteType(UniteType(UInt, String), Int)
	if wide.String() != "Int|String" {
		t.Errorf("later wider member should absorb earlier narrower one, got %s", wide)
	}
}

func TestReduceTypesOrderIndependent(t *testing.T) {
	base := &fakeClass{name: "Base"}
	derived := &fakeClass{name: "Derived", parents: []Nominal{base}}
	candidates := []Type{
		Int, UInt, Float, String, PureString, Bool, None,
		NewArray(Int), NewArray(UInt), NewDict(String),
		NewClass(base), NewClass(derived),
		WithNullable(String, true),
	}
	for _, a := range candidates {
		for _, b := range candidates {
			ab := ReduceTypes([]Type{a, b})
			ba := ReduceTypes([]Type{b, a})
			if !Identical(ab, ba) {
				t.Errorf("ReduceTypes(%s, %s) = %s but reversed = %s\n%v", a, b, ab, ba, pretty.Diff(ab, ba))
			}
		}
	}
	abc := ReduceTypes([]Type{Int, String, UInt})
	cba := ReduceTypes([]Type{UInt, String, Int})
	if !Identical(abc, cba) {
		t.Errorf("three-way reduction depends on order: %s vs %s", abc, cba)
	}
}

func TestUnionOrdersEqualNamesByUnit(t *testing.T) {
	app := &fakeClass{unit: "app", name: "Node"}
	lib := &fakeClass{unit: "lib", name: "Node"}
	tests := []struct {
		name  string
		types []Type
	}{
		{"app first", []Type{NewClass(app), NewClass(lib)}},
		{"lib first", []Type{NewClass(lib), NewClass(app)}},
		{"arrays", []Type{NewArray(NewClass(lib)), NewArray(NewClass(app))}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			u, ok := ReduceTypes(test.types).(*Union)
			if !ok || len(u.Members) != 2 {
				t.Fatalf("expected a two-member union, got %v", ReduceTypes(test.types))
			}
			if qualifier(u.Members[0]) != "app:Node" || qualifier(u.Members[1]) != "lib:Node" {
				t.Errorf("members out of order: %# v", pretty.Formatter(u.Members))
			}
		})
	}
}

func TestReduceTypesAnyForcesAny(t *testing.T) {
	tests := [][]Type{
		{Any},
		{Int, Any},
		{None, String, Any, Int},
		{NewArray(Int), Any},
	}
	for _, tt := range tests {
		if got := ReduceTypes(tt); got != Any {
			t.Errorf("ReduceTypes(%v) = %s, want Any", tt, got)
		}
	}
}

func TestReduceTypesNullable(t *testing.T) {
	if got := ReduceTypes(nil); got != nil {
		t.Errorf("empty reduction = %s, want nil", got)
	}
	if got := ReduceTypes([]Type{None, None}); got != None {
		t.Errorf("only None = %s", got)
	}
	got := ReduceTypes([]Type{None, Int, UInt})
	if !Identical(got, WithNullable(Int, true)) {
		t.Errorf("got %s, want Int?", got)
	}
	got = ReduceTypes([]Type{Int, String, None})
	if !got.Nullable() || got.Tag() != TagUnion {
		t.Errorf("got %s, want nullable union", got)
	}
}

func TestWithoutAndReplace(t *testing.T) {
	u := UniteType(UniteType(Int, String), Bool)
	if got := Without(u, String); !Identical(got, UniteType(Int, Bool)) {
		t.Errorf("Without = %s", got)
	}
	if got := Without(u, Any); got != nil {
		t.Errorf("removing Any leaves nothing, got %s", got)
	}
	if got := Without(Int, String); got != Int {
		t.Errorf("unrelated removal should keep the type, got %s", got)
	}
	if got := Replace(UniteType(UInt, String), UInt, Int); !Identical(got, UniteType(Int, String)) {
		t.Errorf("Replace = %s", got)
	}
	if got := Replace(UInt, UInt, Int); got != Int {
		t.Errorf("Replace on a plain type = %s", got)
	}
}

func TestNullableSingletons(t *testing.T) {
	n1 := WithNullable(Int, true)
	n2 := WithNullable(Int, true)
	if n1 != n2 {
		t.Errorf("nullable basics must stay singletons")
	}
	if NonNull(n1) != Int {
		t.Errorf("NonNull must return the base singleton")
	}
	if WithNullable(Any, true) != Any {
		t.Errorf("Any has no nullable variant")
	}
	if n1.String() != "Int?" {
		t.Errorf("String() = %q", n1.String())
	}
}

func TestPredicates(t *testing.T) {
	if !IsNumber(UniteType(Int, Float)) || IsNumber(UniteType(Int, String)) {
		t.Errorf("IsNumber")
	}
	if IsNumber(WithNullable(Int, true)) {
		t.Errorf("nullable numbers are not number-like")
	}
	if !IsStringable(Bool) || IsStringable(NewArray(String)) {
		t.Errorf("IsStringable")
	}
	if !ContainsTag(UniteType(UInt, String), TagUInt) {
		t.Errorf("ContainsTag")
	}
}
