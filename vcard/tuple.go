package vcard

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ghettovoice/govcard/internal/util"
)

// CardTag is the first element of a serialized card tuple.
const CardTag = "vcard"

// TupleParam is a named parameter of an [ItemTuple].
// Value is a string for single-valued parameters and a []string for lists.
type TupleParam struct {
	Name  string
	Value any
}

// ItemTuple is the structured form of an [Item]: (name, params, type, value).
//
// Value is a string, or a bool, int64 or float64 when the type is boolean, integer or float.
// A failed numeric coercion is represented by NaN.
type ItemTuple struct {
	Name   string
	Params []TupleParam
	Type   ValueType
	Value  any
}

// Param returns the value of the parameter with the given name, compared case-insensitively.
func (t ItemTuple) Param(name string) (any, bool) {
	for _, p := range t.Params {
		if util.EqFold(p.Name, name) {
			return p.Value, true
		}
	}
	return nil, false
}

// CardTuple is the structured form of a [Card]: ("vcard", items).
type CardTuple struct {
	Items []ItemTuple
}

// Tuple returns the structured form of the item.
//
// The name and parameter names are lower-cased, the value is decoded.
// A VALUE parameter overrides the type and is not included in params,
// a LABEL parameter supplies the value when the decoded value is empty.
// When decoding fails the raw value is used.
func (it *Item) Tuple() ItemTuple {
	if it == nil {
		return ItemTuple{}
	}

	t := ItemTuple{Name: util.LCase(it.Name), Type: it.Type}
	value, err := it.Decode()
	if err != nil {
		value = it.Value
	}
	for _, p := range it.Params {
		switch {
		case util.EqFold(p.Name, ParamValue):
			if v := p.Value(); v != "" {
				t.Type = ValueType(util.LCase(v))
			}
			continue
		case util.EqFold(p.Name, ParamLabel) && value == "":
			value = p.Value()
		}

		var v any = p.Value()
		if p.IsList() {
			v = slices.Clone(p.Values)
		}
		t.Params = append(t.Params, TupleParam{Name: util.LCase(p.Name), Value: v})
	}
	t.Value = coerceValue(t.Type, value)
	return t
}

func coerceValue(typ ValueType, s string) any {
	switch typ {
	case TypeBoolean:
		return util.EqFold(strings.TrimSpace(s), "TRUE")
	case TypeInteger:
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return n
		}
		return math.NaN()
	case TypeFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
		return math.NaN()
	default:
		return s
	}
}

// IsNaN reports whether v is the NaN sentinel of a failed numeric coercion.
func IsNaN(v any) bool {
	f, ok := v.(float64)
	return ok && math.IsNaN(f)
}

// stringify renders a tuple value as property text.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return stringify(float64(v))
	case []string:
		return strings.Join(v, ",")
	case []any:
		ss := make([]string, len(v))
		for i := range v {
			ss[i] = stringify(v[i])
		}
		return strings.Join(ss, ",")
	default:
		return fmt.Sprint(v)
	}
}
