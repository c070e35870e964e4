package expr

import (
	"fmt"
	"math"

	"github.com/sievedb/sieve/sql"
)

// EvalContext resolves column references while an expression is being
// evaluated.
type EvalContext interface {
	EvalRef(r Ref) (sql.Value, error)
}

// TypeError is returned when an operand has an unexpected value type.
type TypeError struct {
	Want string
	Got  sql.Value
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expr: want %s got %s", e.Want, sql.Format(e.Got))
}

func (l *Literal) Eval(ectx EvalContext) (sql.Value, error) {
	return l.Value, nil
}

func (r Ref) Eval(ectx EvalContext) (sql.Value, error) {
	if ectx == nil {
		return nil, fmt.Errorf("expr: %s not found", r)
	}
	return ectx.EvalRef(r)
}

func (u *Unary) Eval(ectx EvalContext) (sql.Value, error) {
	if u.Op == NoOp {
		return u.Expr.Eval(ectx)
	}
	return evalCall(opFuncs[u.Op], []Expr{u.Expr}, ectx)
}

func (b *Binary) Eval(ectx EvalContext) (sql.Value, error) {
	return evalCall(opFuncs[b.Op], []Expr{b.Left, b.Right}, ectx)
}

func (c *Call) Eval(ectx EvalContext) (sql.Value, error) {
	cf, ok := idFuncs[c.Name]
	if !ok {
		return nil, fmt.Errorf("expr: function \"%s\" not found", c.Name)
	}
	if len(c.Args) < int(cf.minArgs) {
		return nil, fmt.Errorf("expr: function \"%s\": minimum %d arguments got %d", c.Name,
			cf.minArgs, len(c.Args))
	}
	if len(c.Args) > int(cf.maxArgs) {
		return nil, fmt.Errorf("expr: function \"%s\": maximum %d arguments got %d", c.Name,
			cf.maxArgs, len(c.Args))
	}
	return evalCall(cf, c.Args, ectx)
}

func evalCall(cf *callFunc, exprs []Expr, ectx EvalContext) (sql.Value, error) {
	args := make([]sql.Value, len(exprs))
	for i, e := range exprs {
		var err error
		args[i], err = e.Eval(ectx)
		if err != nil {
			return nil, err
		} else if args[i] == nil && !cf.handleNull {
			return nil, nil
		}
	}
	return cf.fn(args)
}

type callFunc struct {
	fn         func(args []sql.Value) (sql.Value, error)
	minArgs    int16
	maxArgs    int16
	name       string
	handleNull bool
}

var (
	opFuncs = map[Op]*callFunc{
		AddOp:       {fn: addCall, minArgs: 2, maxArgs: 2},
		AndOp:       {fn: andCall, minArgs: 2, maxArgs: 2},
		BinaryAndOp: {fn: binaryAndCall, minArgs: 2, maxArgs: 2},
		BinaryOrOp:  {fn: binaryOrCall, minArgs: 2, maxArgs: 2},
		ConcatOp: {fn: concatCall, minArgs: 2, maxArgs: 2,
			handleNull: true},
		DivideOp:       {fn: divideCall, minArgs: 2, maxArgs: 2},
		EqualOp:        {fn: equalCall, minArgs: 2, maxArgs: 2},
		GreaterEqualOp: {fn: greaterEqualCall, minArgs: 2, maxArgs: 2},
		GreaterThanOp:  {fn: greaterThanCall, minArgs: 2, maxArgs: 2},
		LessEqualOp:    {fn: lessEqualCall, minArgs: 2, maxArgs: 2},
		LessThanOp:     {fn: lessThanCall, minArgs: 2, maxArgs: 2},
		LShiftOp:       {fn: lShiftCall, minArgs: 2, maxArgs: 2},
		ModuloOp:       {fn: moduloCall, minArgs: 2, maxArgs: 2},
		MultiplyOp:     {fn: multiplyCall, minArgs: 2, maxArgs: 2},
		NegateOp:       {fn: negateCall, minArgs: 1, maxArgs: 1},
		NotEqualOp:     {fn: notEqualCall, minArgs: 2, maxArgs: 2},
		NotOp:          {fn: notCall, minArgs: 1, maxArgs: 1},
		OrOp:           {fn: orCall, minArgs: 2, maxArgs: 2},
		RShiftOp:       {fn: rShiftCall, minArgs: 2, maxArgs: 2},
		SubtractOp:     {fn: subtractCall, minArgs: 2, maxArgs: 2},
	}

	idFuncs = map[sql.Identifier]*callFunc{
		sql.ID("abs"): {fn: absCall, minArgs: 1, maxArgs: 1},
		sql.ID("concat"): {fn: concatCall, minArgs: 2, maxArgs: math.MaxInt16,
			handleNull: true},
		sql.ID("is_null"): {fn: isNullCall, minArgs: 1, maxArgs: 1,
			handleNull: true},
	}
)

func init() {
	for op, cf := range opFuncs {
		if op == NegateOp {
			cf.name = "negate"
		} else {
			cf.name = fmt.Sprintf("\"%s\"", op)
		}
	}
	for id, cf := range idFuncs {
		cf.name = id.String()
	}
}

func numFunc(a0 sql.Value, a1 sql.Value, ifn func(i0, i1 sql.Int64Value) sql.Value,
	ffn func(f0, f1 sql.Float64Value) sql.Value) (sql.Value, error) {

	switch a0 := a0.(type) {
	case sql.Float64Value:
		switch a1 := a1.(type) {
		case sql.Float64Value:
			return ffn(a0, a1), nil
		case sql.Int64Value:
			return ffn(a0, sql.Float64Value(a1)), nil
		}
	case sql.Int64Value:
		switch a1 := a1.(type) {
		case sql.Float64Value:
			return ffn(sql.Float64Value(a0), a1), nil
		case sql.Int64Value:
			return ifn(a0, a1), nil
		}
	default:
		return nil, &TypeError{Want: "number", Got: a0}
	}
	return nil, &TypeError{Want: "number", Got: a1}
}

func intFunc(a0 sql.Value, a1 sql.Value, ifn func(i0, i1 sql.Int64Value) sql.Value) (sql.Value,
	error) {

	if a0, ok := a0.(sql.Int64Value); ok {
		if a1, ok := a1.(sql.Int64Value); ok {
			return ifn(a0, a1), nil
		}
		return nil, &TypeError{Want: "integer", Got: a1}
	}
	return nil, &TypeError{Want: "integer", Got: a0}
}

func shiftFunc(a0 sql.Value, a1 sql.Value,
	ifn func(i0 sql.Int64Value, i1 uint64) sql.Value) (sql.Value, error) {

	if a0, ok := a0.(sql.Int64Value); ok {
		if a1, ok := a1.(sql.Int64Value); ok {
			if a1 < 0 {
				return nil, &TypeError{Want: "non-negative integer", Got: a1}
			}
			return ifn(a0, uint64(a1)), nil
		}
		return nil, &TypeError{Want: "integer", Got: a1}
	}
	return nil, &TypeError{Want: "integer", Got: a0}
}

func addCall(args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 + i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 + f1
		})
}

func andCall(args []sql.Value) (sql.Value, error) {
	if a0, ok := args[0].(sql.BoolValue); ok {
		if a1, ok := args[1].(sql.BoolValue); ok {
			return a0 && a1, nil
		}
		return nil, &TypeError{Want: "boolean", Got: args[1]}
	}
	return nil, &TypeError{Want: "boolean", Got: args[0]}
}

func binaryAndCall(args []sql.Value) (sql.Value, error) {
	return intFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 & i1
		})
}

func binaryOrCall(args []sql.Value) (sql.Value, error) {
	return intFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 | i1
		})
}

func concatCall(args []sql.Value) (sql.Value, error) {
	s := ""
	for _, a := range args {
		if a == nil {
			continue
		}
		switch v := a.(type) {
		case sql.BoolValue:
			if v {
				s += sql.TrueString
			} else {
				s += sql.FalseString
			}
		case sql.StringValue:
			s += string(v)
		case sql.BytesValue:
			s += fmt.Sprintf("%v", v)
		case sql.Float64Value:
			s += fmt.Sprintf("%v", v)
		case sql.Int64Value:
			s += fmt.Sprintf("%v", v)
		default:
			panic(fmt.Sprintf("unexpected type for sql.Value: %T: %v", a, a))
		}
	}
	return sql.StringValue(s), nil
}

func divideCall(args []sql.Value) (sql.Value, error) {
	if i, ok := args[1].(sql.Int64Value); ok && i == 0 {
		return nil, fmt.Errorf("expr: division by zero")
	}
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 / i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 / f1
		})
}

func equalCall(args []sql.Value) (sql.Value, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp == 0), nil
}

func greaterEqualCall(args []sql.Value) (sql.Value, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp >= 0), nil
}

func greaterThanCall(args []sql.Value) (sql.Value, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp > 0), nil
}

func lessEqualCall(args []sql.Value) (sql.Value, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp <= 0), nil
}

func lessThanCall(args []sql.Value) (sql.Value, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp < 0), nil
}

func lShiftCall(args []sql.Value) (sql.Value, error) {
	return shiftFunc(args[0], args[1],
		func(i0 sql.Int64Value, i1 uint64) sql.Value {
			return i0 << i1
		})
}

func moduloCall(args []sql.Value) (sql.Value, error) {
	if i, ok := args[1].(sql.Int64Value); ok && i == 0 {
		return nil, fmt.Errorf("expr: division by zero")
	}
	return intFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 % i1
		})
}

func multiplyCall(args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 * i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 * f1
		})
}

func negateCall(args []sql.Value) (sql.Value, error) {
	switch a0 := args[0].(type) {
	case sql.Float64Value:
		return -a0, nil
	case sql.Int64Value:
		return -a0, nil
	}
	return nil, &TypeError{Want: "number", Got: args[0]}
}

func notEqualCall(args []sql.Value) (sql.Value, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp != 0), nil
}

func notCall(args []sql.Value) (sql.Value, error) {
	if a0, ok := args[0].(sql.BoolValue); ok {
		return sql.BoolValue(a0 == false), nil
	}
	return nil, &TypeError{Want: "boolean", Got: args[0]}
}

func orCall(args []sql.Value) (sql.Value, error) {
	if a0, ok := args[0].(sql.BoolValue); ok {
		if a1, ok := args[1].(sql.BoolValue); ok {
			return a0 || a1, nil
		}
		return nil, &TypeError{Want: "boolean", Got: args[1]}
	}
	return nil, &TypeError{Want: "boolean", Got: args[0]}
}

func rShiftCall(args []sql.Value) (sql.Value, error) {
	return shiftFunc(args[0], args[1],
		func(i0 sql.Int64Value, i1 uint64) sql.Value {
			return i0 >> i1
		})
}

func subtractCall(args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 - i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 - f1
		})
}

func absCall(args []sql.Value) (sql.Value, error) {
	switch a0 := args[0].(type) {
	case sql.Float64Value:
		if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	case sql.Int64Value:
		if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	}
	return nil, &TypeError{Want: "number", Got: args[0]}
}

func isNullCall(args []sql.Value) (sql.Value, error) {
	return sql.BoolValue(args[0] == nil), nil
}
