package seed

import "time"

type (
	Kind int

	// Value is a single column value for InsertInto.
	Value struct {
		kind Kind
		s    string
		i    int64
		f    float64
		b    bool
		t    time.Time
	}

	// Row is an ordered set of column values. The zero value is empty and
	// ready to use.
	Row struct {
		cols []string
		vals []Value
	}
)

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

func Null() Value            { return Value{kind: KindNull} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Any returns the value as a database/sql argument.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

func NewRow() *Row {
	return &Row{}
}

// Set assigns col. Setting a column twice keeps its first position.
func (r *Row) Set(col string, v Value) *Row {
	for i, c := range r.cols {
		if c == col {
			r.vals[i] = v
			return r
		}
	}
	r.cols = append(r.cols, col)
	r.vals = append(r.vals, v)
	return r
}

func (r *Row) Get(col string) (Value, bool) {
	for i, c := range r.cols {
		if c == col {
			return r.vals[i], true
		}
	}
	return Value{}, false
}

func (r *Row) Columns() []string {
	return append([]string(nil), r.cols...)
}

func (r *Row) Values() []Value {
	return append([]Value(nil), r.vals...)
}

func (r *Row) Len() int {
	return len(r.cols)
}
