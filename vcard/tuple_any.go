package vcard

import (
	"math"
	"slices"
	"strings"

	"braces.dev/errtrace"
)

// Any returns the card as a generic tree: []any{"vcard", []any{item, ...}}.
// It is meant for encoders other than JSON, such as YAML or CBOR.
// Parameter order is not kept since params become a map.
func (t CardTuple) Any() any {
	items := make([]any, len(t.Items))
	for i, it := range t.Items {
		items[i] = it.Any()
	}
	return []any{CardTag, items}
}

// Any returns the item as a generic tree: []any{name, map[string]any{params}, type, value}.
// The NaN sentinel becomes nil.
func (t ItemTuple) Any() any {
	params := make(map[string]any, len(t.Params))
	for _, p := range t.Params {
		params[p.Name] = p.Value
	}
	v := t.Value
	if IsNaN(v) {
		v = nil
	}
	return []any{t.Name, params, string(t.Type), v}
}

// CardTuplesFromAny converts a generic list of cards, as decoded by YAML or CBOR, into card tuples.
func CardTuplesFromAny(v any) ([]CardTuple, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, errtrace.Wrap(newMalformedError("", "expected array of cards, got %T", v))
	}
	tuples := make([]CardTuple, 0, len(list))
	for i, el := range list {
		t, err := cardTupleFromAny(el, indexPath("", i))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		tuples = append(tuples, t)
	}
	return tuples, nil
}

// CardTupleFromAny converts a generic tree of a single card into a card tuple.
// See [CardTuple.Any].
func CardTupleFromAny(v any) (CardTuple, error) {
	return errtrace.Wrap2(cardTupleFromAny(v, ""))
}

func cardTupleFromAny(v any, path string) (CardTuple, error) {
	var t CardTuple
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return t, errtrace.Wrap(newMalformedError(path, "expected [%q, items]", CardTag))
	}
	if tag, ok := arr[0].(string); !ok || tag != CardTag {
		return t, errtrace.Wrap(newMalformedError(indexPath(path, 0), "expected %q tag", CardTag))
	}
	items, ok := arr[1].([]any)
	if !ok {
		return t, errtrace.Wrap(newMalformedError(indexPath(path, 1), "expected item list"))
	}
	for i, el := range items {
		it, err := itemTupleFromAny(el, indexPath(indexPath(path, 1), i))
		if err != nil {
			return t, errtrace.Wrap(err)
		}
		t.Items = append(t.Items, it)
	}
	return t, nil
}

// ItemTupleFromAny converts a generic tree of a single item into an item tuple.
// See [ItemTuple.Any].
func ItemTupleFromAny(v any) (ItemTuple, error) {
	return errtrace.Wrap2(itemTupleFromAny(v, ""))
}

func itemTupleFromAny(v any, path string) (ItemTuple, error) {
	var t ItemTuple
	arr, ok := v.([]any)
	if !ok || len(arr) != 4 {
		return t, errtrace.Wrap(newMalformedError(path, "expected [name, params, type, value]"))
	}

	if t.Name, ok = arr[0].(string); !ok {
		return t, errtrace.Wrap(newMalformedError(indexPath(path, 0), "expected property name"))
	}

	params, err := paramsFromAny(arr[1], indexPath(path, 1))
	if err != nil {
		return t, errtrace.Wrap(err)
	}
	t.Params = params

	typ, ok := arr[2].(string)
	if !ok {
		return t, errtrace.Wrap(newMalformedError(indexPath(path, 2), "expected value type"))
	}
	t.Type = ValueType(typ)

	if t.Value, ok = scalarFromAny(arr[3]); !ok {
		return t, errtrace.Wrap(newMalformedError(indexPath(path, 3), "expected scalar value, got %T", arr[3]))
	}
	if t.Value == nil && (t.Type == TypeInteger || t.Type == TypeFloat) {
		t.Value = math.NaN()
	}
	return t, nil
}

func paramsFromAny(v any, path string) ([]TupleParam, error) {
	var params []TupleParam
	add := func(key, val any) error {
		name, ok := key.(string)
		if !ok {
			return errtrace.Wrap(newMalformedError(path, "expected string key, got %T", key))
		}
		pv, err := paramValueFromAny(val, keyPath(path, name))
		if err != nil {
			return errtrace.Wrap(err)
		}
		params = append(params, TupleParam{Name: name, Value: pv})
		return nil
	}

	switch m := v.(type) {
	case nil:
	case map[string]any:
		for k, val := range m {
			if err := add(k, val); err != nil {
				return nil, errtrace.Wrap(err)
			}
		}
	case map[any]any:
		for k, val := range m {
			if err := add(k, val); err != nil {
				return nil, errtrace.Wrap(err)
			}
		}
	default:
		return nil, errtrace.Wrap(newMalformedError(path, "expected parameter map, got %T", v))
	}
	// maps have no order
	slices.SortFunc(params, func(a, b TupleParam) int { return strings.Compare(a.Name, b.Name) })
	return params, nil
}

func paramValueFromAny(v any, path string) (any, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case []string:
		return slices.Clone(v), nil
	case []any:
		vals := make([]string, len(v))
		for i := range v {
			s, ok := v[i].(string)
			if !ok {
				return nil, errtrace.Wrap(newMalformedError(indexPath(path, i), "expected string, got %T", v[i]))
			}
			vals[i] = s
		}
		return vals, nil
	default:
		return nil, errtrace.Wrap(newMalformedError(path, "expected string or list of strings, got %T", v))
	}
}

// scalarFromAny normalizes numbers decoded by generic decoders to int64 or float64.
func scalarFromAny(v any) (any, bool) {
	switch v := v.(type) {
	case nil, string, bool, int64, float64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		return uintValue(uint64(v)), true
	case uint64:
		return uintValue(v), true
	case float32:
		return float64(v), true
	default:
		return nil, false
	}
}

func uintValue(n uint64) any {
	if n <= math.MaxInt64 {
		return int64(n)
	}
	return float64(n)
}
