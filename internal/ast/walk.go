package ast

// Inspect visits e and its sub-expressions depth-first. Returning false
// from fn skips the children of that node. Lambda bodies are statements,
// so Inspect never enters them; only a lambda's Result expression is visited.
func Inspect(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, child := range children(e) {
		Inspect(child, fn)
	}
}

func children(e Expression) []Expression {
	switch n := e.(type) {
	case *InterpolatedString:
		return n.Parts
	case *ArrayLiteral:
		return n.Elements
	case *DictLiteral:
		var out []Expression
		for _, entry := range n.Entries {
			out = append(out, entry.Key, entry.Value)
		}
		return out
	case *ObjectLiteral:
		var out []Expression
		for _, m := range n.Members {
			if m.Value != nil {
				out = append(out, m.Value)
			}
		}
		return out
	case *AccessingIdentifier:
		return []Expression{n.Object}
	case *KeyAccessing:
		return []Expression{n.Left, n.Key}
	case *SquareAccessing:
		return []Expression{n.Left}
	case *Parentheses:
		return []Expression{n.Inner}
	case *BinaryOperation:
		return []Expression{n.Left, n.Right}
	case *UnaryOperation:
		return []Expression{n.Operand}
	case *TernaryExpression:
		return []Expression{n.Condition, n.Then, n.Else}
	case *CastOperation:
		return []Expression{n.Left}
	case *IsOperation:
		return []Expression{n.Left}
	case *CallExpression:
		return append([]Expression{n.Callee}, n.CallArguments.expressions()...)
	case *PipeCall:
		return []Expression{n.Left, n.Call}
	case *NewExpression:
		return n.CallArguments.expressions()
	case *AnonymousFunction:
		if n.Result != nil {
			return []Expression{n.Result}
		}
	case *YieldExpression:
		if n.Value != nil {
			return []Expression{n.Value}
		}
	case *XTag:
		var out []Expression
		for _, a := range n.Attributes {
			out = append(out, a.Value)
		}
		return append(out, n.Children...)
	}
	return nil
}

func (a *CallArguments) expressions() []Expression {
	var out []Expression
	for _, arg := range a.Args {
		out = append(out, arg.Value)
	}
	for _, cb := range a.Callbacks {
		out = append(out, cb.Value)
	}
	return out
}
