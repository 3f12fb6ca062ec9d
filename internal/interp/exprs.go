package interp

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/runtime"
)

// evalExpr evaluates every expression-position node kind to a runtime
// Value. The switch is exhaustive over the ast.Expr variants.
func (ip *Interp) evalExpr(expr ast.Expr) (runtime.Value, *diag.Diagnostic) {
	ip.trace.Debugf("eval %T", expr)

	switch e := expr.(type) {
	case *ast.IntLit:
		return runtime.Value{Type: ast.INT, Int: e.Value}, nil
	case *ast.FloatLit:
		return runtime.Value{Type: ast.FLOAT, Float: e.Value}, nil
	case *ast.CharLit:
		return runtime.Value{Type: ast.CHAR, Char: e.Value}, nil
	case *ast.StringLit:
		return runtime.Value{Type: ast.STRING, Str: e.Value}, nil
	case *ast.VarRef:
		v, ok := ip.stack.Peek().Get(e.Name)
		if !ok {
			return runtime.Value{}, diag.Errorf(diag.RunUndefinedVariable, e.Pos(), "undefined variable %q", e.Name)
		}
		return v, nil
	case *ast.Index:
		arr, idx, err := ip.resolveIndex(e)
		if err != nil {
			return runtime.Value{}, err
		}
		return arr.Items[idx], nil
	case *ast.UnaryOp:
		return ip.evalUnary(e)
	case *ast.BinOp:
		return ip.evalBinOp(e)
	case *ast.Call:
		return ip.evalCall(e)
	}
	return runtime.Value{}, diag.Errorf(diag.RunTypeError, expr.Pos(), "internal: unhandled expression kind %T", expr)
}

func (ip *Interp) evalUnary(e *ast.UnaryOp) (runtime.Value, *diag.Diagnostic) {
	v, err := ip.evalExpr(e.Operand)
	if err != nil {
		return runtime.Value{}, err
	}
	if e.Op == "+" {
		if !v.IsNumeric() {
			return runtime.Value{}, diag.Errorf(diag.RunTypeError, e.Pos(), "unary + requires a numeric operand")
		}
		return v, nil
	}
	if !v.IsNumeric() {
		return runtime.Value{}, diag.Errorf(diag.RunTypeError, e.Pos(), "unary - requires a numeric operand")
	}
	if v.Type == ast.FLOAT {
		return runtime.Value{Type: ast.FLOAT, Float: -v.Float}, nil
	}
	return runtime.Value{Type: ast.INT, Int: -v.Int}, nil
}

func (ip *Interp) evalBinOp(e *ast.BinOp) (runtime.Value, *diag.Diagnostic) {
	left, err := ip.evalExpr(e.Left)
	if err != nil {
		return runtime.Value{}, err
	}

	if e.Op == "&&" || e.Op == "||" {
		return ip.evalLogical(e, left)
	}

	right, err := ip.evalExpr(e.Right)
	if err != nil {
		return runtime.Value{}, err
	}

	switch e.Op {
	case "+":
		return ip.evalAdd(e, left, right)
	case "-", "*":
		return ip.evalArith(e, left, right)
	case "/":
		return ip.evalDiv(e, left, right)
	case "==", "!=", "<", ">", "<=", ">=":
		return ip.evalRelational(e, left, right)
	}
	return runtime.Value{}, diag.Errorf(diag.RunTypeError, e.Pos(), "internal: unhandled operator %q", e.Op)
}

func (ip *Interp) evalAdd(e *ast.BinOp, left, right runtime.Value) (runtime.Value, *diag.Diagnostic) {
	if left.Type == ast.STRING || right.Type == ast.STRING {
		if left.Type != ast.STRING || right.Type != ast.STRING {
			return runtime.Value{}, diag.Errorf(diag.RunTypeError, e.Pos(), "+ between string and non-string is not allowed")
		}
		return runtime.Value{Type: ast.STRING, Str: left.Str + right.Str}, nil
	}
	return ip.evalArith(e, left, right)
}

func (ip *Interp) evalArith(e *ast.BinOp, left, right runtime.Value) (runtime.Value, *diag.Diagnostic) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return runtime.Value{}, diag.Errorf(diag.RunTypeError, e.Pos(), "operator %q requires numeric operands", e.Op)
	}
	if left.Type == ast.FLOAT || right.Type == ast.FLOAT {
		l, r := left.AsFloat(), right.AsFloat()
		var result float64
		switch e.Op {
		case "+":
			result = l + r
		case "-":
			result = l - r
		case "*":
			result = l * r
		}
		return runtime.Value{Type: ast.FLOAT, Float: result}, nil
	}

	var result int64
	switch e.Op {
	case "+":
		result = left.Int + right.Int
	case "-":
		result = left.Int - right.Int
	case "*":
		result = left.Int * right.Int
	}
	return runtime.Value{Type: ast.INT, Int: result}, nil
}

func (ip *Interp) evalDiv(e *ast.BinOp, left, right runtime.Value) (runtime.Value, *diag.Diagnostic) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return runtime.Value{}, diag.Errorf(diag.RunTypeError, e.Pos(), "/ requires numeric operands")
	}
	r := right.AsFloat()
	if r == 0 {
		return runtime.Value{}, diag.Errorf(diag.RunDivByZero, e.Pos(), "division by zero")
	}
	return runtime.Value{Type: ast.FLOAT, Float: left.AsFloat() / r}, nil
}

func (ip *Interp) evalRelational(e *ast.BinOp, left, right runtime.Value) (runtime.Value, *diag.Diagnostic) {
	toInt := func(b bool) runtime.Value {
		if b {
			return runtime.Value{Type: ast.INT, Int: 1}
		}
		return runtime.Value{Type: ast.INT, Int: 0}
	}

	leftIsText := left.Type == ast.STRING || left.Type == ast.CHAR
	rightIsText := right.Type == ast.STRING || right.Type == ast.CHAR

	if left.IsNumeric() && right.IsNumeric() {
		l, r := left.AsFloat(), right.AsFloat()
		switch e.Op {
		case "==":
			return toInt(l == r), nil
		case "!=":
			return toInt(l != r), nil
		case "<":
			return toInt(l < r), nil
		case ">":
			return toInt(l > r), nil
		case "<=":
			return toInt(l <= r), nil
		case ">=":
			return toInt(l >= r), nil
		}
	}

	if leftIsText && rightIsText {
		l, r := textOf(left), textOf(right)
		switch e.Op {
		case "==":
			return toInt(l == r), nil
		case "!=":
			return toInt(l != r), nil
		case "<":
			return toInt(l < r), nil
		case ">":
			return toInt(l > r), nil
		case "<=":
			return toInt(l <= r), nil
		case ">=":
			return toInt(l >= r), nil
		}
	}

	return runtime.Value{}, diag.Errorf(diag.RunTypeError, e.Pos(), "cannot compare %s and %s", left.Type, right.Type)
}

func textOf(v runtime.Value) string {
	if v.Type == ast.CHAR {
		return string(v.Char)
	}
	return v.Str
}

// evalLogical short-circuits: the right operand is only evaluated once
// the left operand fails to already determine the result.
func (ip *Interp) evalLogical(e *ast.BinOp, left runtime.Value) (runtime.Value, *diag.Diagnostic) {
	l := left.Truthy()
	if e.Op == "&&" && !l {
		return runtime.Value{Type: ast.INT, Int: 0}, nil
	}
	if e.Op == "||" && l {
		return runtime.Value{Type: ast.INT, Int: 1}, nil
	}

	right, err := ip.evalExpr(e.Right)
	if err != nil {
		return runtime.Value{}, err
	}
	if right.Truthy() {
		return runtime.Value{Type: ast.INT, Int: 1}, nil
	}
	return runtime.Value{Type: ast.INT, Int: 0}, nil
}
