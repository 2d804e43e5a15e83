package diagnostics

// ErrorCode identifies one kind of semantic failure.
type ErrorCode string

const (
	ErrSymbolNotFound                ErrorCode = "C001"
	ErrMissingTypeHint               ErrorCode = "C002"
	ErrTypeIncompatible              ErrorCode = "C003"
	ErrInvalidConstantExpression     ErrorCode = "C004"
	ErrIncompatibleOverrideKind      ErrorCode = "C005"
	ErrIncompatibleOverrideModifier  ErrorCode = "C006"
	ErrIncompatibleOverrideSignature ErrorCode = "C007"
	ErrOverrideTypeHintMismatch      ErrorCode = "C008"
	ErrUnimplementedInterfaceMethod  ErrorCode = "C009"
	ErrCircularTypeInference         ErrorCode = "C010"
	ErrArgumentMismatch              ErrorCode = "C011"
	ErrArgumentTypeMismatch          ErrorCode = "C012"
	ErrMissingRequiredArgument       ErrorCode = "C013"
	ErrNonAssignableInoutArgument    ErrorCode = "C014"
	ErrAmbiguousCallbackTarget       ErrorCode = "C015"
	ErrInvalidOperatorUsage          ErrorCode = "C016"
	ErrInvalidConcatTarget           ErrorCode = "C017"
	ErrAccessViolation               ErrorCode = "C018"
	ErrInvalidInheritance            ErrorCode = "C019"
	ErrNotCallable                   ErrorCode = "C020"
	ErrNotAssignable                 ErrorCode = "C021"
	ErrMisplacedStatement            ErrorCode = "C022"
	ErrMemberNotFound                ErrorCode = "C023"
	ErrDuplicateDeclaration          ErrorCode = "C024"
)

var templates = map[ErrorCode]string{
	ErrSymbolNotFound:                "symbol '%s' not found",
	ErrMissingTypeHint:               "%s requires a type hint",
	ErrTypeIncompatible:              "type %s does not accept %s",
	ErrInvalidConstantExpression:     "%s is not a compile-time constant expression",
	ErrIncompatibleOverrideKind:      "'%s' overrides a %s with a %s",
	ErrIncompatibleOverrideModifier:  "'%s' must keep the %s modifier of the overridden member (got %s)",
	ErrIncompatibleOverrideSignature: "'%s' is incompatible with the overridden signature: %s",
	ErrOverrideTypeHintMismatch:      "'%s' type hint does not match the overridden member: %s",
	ErrUnimplementedInterfaceMethod:  "method '%s' of '%s' is not implemented",
	ErrCircularTypeInference:         "circular type inference for '%s'",
	ErrArgumentMismatch:              "argument mismatch calling '%s': %s",
	ErrArgumentTypeMismatch:          "argument '%s' expects %s, got %s",
	ErrMissingRequiredArgument:       "missing required argument '%s'",
	ErrNonAssignableInoutArgument:    "argument for inout parameter '%s' must be assignable",
	ErrAmbiguousCallbackTarget:       "cannot bind callback argument of '%s': %s",
	ErrInvalidOperatorUsage:          "operator '%s' cannot be applied to %s",
	ErrInvalidConcatTarget:           "cannot concat to %s",
	ErrAccessViolation:               "%s member '%s' is not accessible here",
	ErrInvalidInheritance:            "invalid inheritance for '%s': %s",
	ErrNotCallable:                   "%s is not callable",
	ErrNotAssignable:                 "%s is not assignable",
	ErrMisplacedStatement:            "%s",
	ErrMemberNotFound:                "member '%s' not found on %s",
	ErrDuplicateDeclaration:          "'%s' is already declared in this scope",
}

// Title is the short taxonomy name of a code.
func (c ErrorCode) Title() string {
	switch c {
	case ErrSymbolNotFound:
		return "SymbolNotFound"
	case ErrMissingTypeHint:
		return "MissingTypeHint"
	case ErrTypeIncompatible:
		return "TypeIncompatible"
	case ErrInvalidConstantExpression:
		return "InvalidConstantExpression"
	case ErrIncompatibleOverrideKind:
		return "IncompatibleOverrideKind"
	case ErrIncompatibleOverrideModifier:
		return "IncompatibleOverrideModifier"
	case ErrIncompatibleOverrideSignature:
		return "IncompatibleOverrideSignature"
	case ErrOverrideTypeHintMismatch:
		return "OverrideTypeHintMismatch"
	case ErrUnimplementedInterfaceMethod:
		return "UnimplementedInterfaceMethod"
	case ErrCircularTypeInference:
		return "CircularTypeInference"
	case ErrArgumentMismatch:
		return "ArgumentMismatch"
	case ErrArgumentTypeMismatch:
		return "ArgumentTypeMismatch"
	case ErrMissingRequiredArgument:
		return "MissingRequiredArgument"
	case ErrNonAssignableInoutArgument:
		return "NonAssignableInoutArgument"
	case ErrAmbiguousCallbackTarget:
		return "AmbiguousCallbackTarget"
	case ErrInvalidOperatorUsage:
		return "InvalidOperatorUsage"
	case ErrInvalidConcatTarget:
		return "InvalidConcatTarget"
	case ErrAccessViolation:
		return "AccessViolation"
	case ErrInvalidInheritance:
		return "InvalidInheritance"
	case ErrNotCallable:
		return "NotCallable"
	case ErrNotAssignable:
		return "NotAssignable"
	case ErrMisplacedStatement:
		return "MisplacedStatement"
	case ErrMemberNotFound:
		return "MemberNotFound"
	case ErrDuplicateDeclaration:
		return "DuplicateDeclaration"
	}
	return string(c)
}
