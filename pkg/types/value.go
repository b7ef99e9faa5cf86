package types

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the dynamic type of a cell Value.
type Kind int

// Cell value kinds. A column legally holds one non-null kind plus nulls;
// anything else is an anomaly reported by Table.Anomalies.
const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
	KindTime
)

// String returns the lowercase kind name used in reports and anomalies.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Value is one immutable table cell. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	t    time.Time
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text returns a text Value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Time returns a timestamp Value.
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IntVal returns the integer payload. The bool is false for other kinds.
func (v Value) IntVal() (int64, bool) { return v.i, v.kind == KindInt }

// FloatVal returns the float payload. The bool is false for other kinds.
func (v Value) FloatVal() (float64, bool) { return v.f, v.kind == KindFloat }

// TextVal returns the text payload. The bool is false for other kinds.
func (v Value) TextVal() (string, bool) { return v.s, v.kind == KindText }

// BoolVal returns the boolean payload. The bool is false for other kinds.
func (v Value) BoolVal() (bool, bool) { return v.b, v.kind == KindBool }

// TimeVal returns the timestamp payload. The bool is false for other kinds.
func (v Value) TimeVal() (time.Time, bool) { return v.t, v.kind == KindTime }

// Any returns the payload as an untyped value: nil, int64, float64, string,
// bool, or time.Time. Used by writers that hand cells to database/sql or
// encoding packages.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// String renders the value for text output (CSV cells, SQL literals decide
// quoting themselves). Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Year extracts a 4-digit year from the value: the integer itself, an
// integral float, a parseable text value, or the year of a timestamp.
// Returns false for nulls and for values that do not parse as a 4-digit
// year; such rows are excluded from partition summaries and filtered reads.
func (v Value) Year() (int, bool) {
	switch v.kind {
	case KindInt:
		return yearInRange(int(v.i))
	case KindFloat:
		if v.f != float64(int64(v.f)) {
			return 0, false
		}
		return yearInRange(int(v.f))
	case KindText:
		n, err := strconv.Atoi(strings.TrimSpace(v.s))
		if err != nil {
			return 0, false
		}
		return yearInRange(n)
	case KindTime:
		return yearInRange(v.t.Year())
	default:
		return 0, false
	}
}

func yearInRange(n int) (int, bool) {
	if n < 1000 || n > 9999 {
		return 0, false
	}
	return n, true
}

// timeLayouts are tried in order by ParseValue. The first two are the
// layouts mdb-export emits, the rest are common interchange forms.
var timeLayouts = []string{
	"01/02/06 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseValue infers a typed Value from a raw text cell, in the order
// integer, float, boolean, timestamp, text. Empty input is null.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return Bool(strings.ToLower(s) == "true")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time(t)
		}
	}
	return Text(raw)
}
