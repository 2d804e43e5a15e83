package config

const SourceFileExt = ".tea"

// OptionsFileNames are the checker configuration files looked up by FindOptions.
var OptionsFileNames = []string{"tea.yaml", "tea.yml"}

// Reserved identifiers
const (
	ThisName        = "this"
	SuperName       = "super"
	ConstructorName = "construct"
	SelfTypeName    = "Self"
)

// Built-in type names
const (
	AnyTypeName        = "Any"
	NoneTypeName       = "None"
	VoidTypeName       = "Void"
	BoolTypeName       = "Bool"
	IntTypeName        = "Int"
	UIntTypeName       = "UInt"
	FloatTypeName      = "Float"
	StringTypeName     = "String"
	PureStringTypeName = "PureString"
	BytesTypeName      = "Bytes"
	ObjectTypeName     = "Object"
	RegexTypeName      = "Regex"
	XViewTypeName      = "XView"
	ArrayTypeName      = "Array"
	DictTypeName       = "Dict"
)

// Default well-known interface names
const (
	IteratorName     = "Iterator"
	ExceptionName    = "Exception"
	ViewAcceptorName = "IView"
)

// BuiltinUnitName is the unit every other unit implicitly depends on.
const BuiltinUnitName = "builtin"
