package vcard

import (
	"io"
	"math"
	"slices"
	"strconv"

	"braces.dev/errtrace"
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes cards as a JSON array of structured card forms.
func MarshalJSON(cards []*Card) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, c := range cards {
		if i > 0 {
			stream.WriteMore()
		}
		c.Tuple().writeJSON(stream)
	}
	stream.WriteArrayEnd()
	return streamBytes(stream)
}

// MarshalJSON implements [json.Marshaler].
// The card is encoded as ["vcard", [item, ...]].
func (t CardTuple) MarshalJSON() ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)
	t.writeJSON(stream)
	return streamBytes(stream)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (t *CardTuple) UnmarshalJSON(data []byte) error {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	tt, err := readCardTuple(iter, "")
	if err != nil {
		return errtrace.Wrap(err)
	}
	*t = tt
	return nil
}

// MarshalJSON implements [json.Marshaler].
// The item is encoded as [name, {params}, type, value].
func (t ItemTuple) MarshalJSON() ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)
	t.writeJSON(stream)
	return streamBytes(stream)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (t *ItemTuple) UnmarshalJSON(data []byte) error {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	tt, err := readItemTuple(iter, "")
	if err != nil {
		return errtrace.Wrap(err)
	}
	*t = tt
	return nil
}

func streamBytes(stream *jsoniter.Stream) ([]byte, error) {
	if stream.Error != nil {
		return nil, errtrace.Wrap(stream.Error)
	}
	return slices.Clone(stream.Buffer()), nil
}

func (t CardTuple) writeJSON(stream *jsoniter.Stream) {
	stream.WriteArrayStart()
	stream.WriteString(CardTag)
	stream.WriteMore()
	stream.WriteArrayStart()
	for i, it := range t.Items {
		if i > 0 {
			stream.WriteMore()
		}
		it.writeJSON(stream)
	}
	stream.WriteArrayEnd()
	stream.WriteArrayEnd()
}

func (t ItemTuple) writeJSON(stream *jsoniter.Stream) {
	stream.WriteArrayStart()
	stream.WriteString(t.Name)
	stream.WriteMore()

	stream.WriteObjectStart()
	for i, p := range t.Params {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(p.Name)
		writeJSONValue(stream, p.Value)
	}
	stream.WriteObjectEnd()
	stream.WriteMore()

	stream.WriteString(string(t.Type))
	stream.WriteMore()
	writeJSONValue(stream, t.Value)
	stream.WriteArrayEnd()
}

func writeJSONValue(stream *jsoniter.Stream, v any) {
	switch v := v.(type) {
	case nil:
		stream.WriteNil()
	case string:
		stream.WriteString(v)
	case []string:
		stream.WriteArrayStart()
		for i, s := range v {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteString(s)
		}
		stream.WriteArrayEnd()
	case bool:
		stream.WriteBool(v)
	case int64:
		stream.WriteInt64(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			stream.WriteNil()
			return
		}
		stream.WriteFloat64(v)
	default:
		stream.WriteVal(v)
	}
}

func indexPath(path string, i int) string { return path + "[" + strconv.Itoa(i) + "]" }

func keyPath(path, key string) string { return path + "." + key }

func iterError(iter *jsoniter.Iterator, path string) error {
	if iter.Error == nil || iter.Error == io.EOF {
		return nil
	}
	return newMalformedError(path, iter.Error)
}

func readCardTuple(iter *jsoniter.Iterator, path string) (CardTuple, error) {
	var t CardTuple
	if iter.WhatIsNext() != jsoniter.ArrayValue {
		return t, errtrace.Wrap(newMalformedError(path, "expected card array"))
	}

	n := 0
	for ; iter.ReadArray(); n++ {
		elPath := indexPath(path, n)
		switch n {
		case 0:
			if iter.WhatIsNext() != jsoniter.StringValue || iter.ReadString() != CardTag {
				return t, errtrace.Wrap(newMalformedError(elPath, "expected %q tag", CardTag))
			}
		case 1:
			if iter.WhatIsNext() != jsoniter.ArrayValue {
				return t, errtrace.Wrap(newMalformedError(elPath, "expected item list"))
			}
			for i := 0; iter.ReadArray(); i++ {
				it, err := readItemTuple(iter, indexPath(elPath, i))
				if err != nil {
					return t, errtrace.Wrap(err)
				}
				t.Items = append(t.Items, it)
			}
		default:
			return t, errtrace.Wrap(newMalformedError(elPath, "unexpected element"))
		}
		if err := iterError(iter, elPath); err != nil {
			return t, errtrace.Wrap(err)
		}
	}
	if err := iterError(iter, path); err != nil {
		return t, errtrace.Wrap(err)
	}
	if n != 2 {
		return t, errtrace.Wrap(newMalformedError(path, "expected 2 elements, got %d", n))
	}
	return t, nil
}

func readItemTuple(iter *jsoniter.Iterator, path string) (ItemTuple, error) {
	var t ItemTuple
	if iter.WhatIsNext() != jsoniter.ArrayValue {
		return t, errtrace.Wrap(newMalformedError(path, "expected item array"))
	}

	n := 0
	for ; iter.ReadArray(); n++ {
		elPath := indexPath(path, n)
		switch n {
		case 0:
			if iter.WhatIsNext() != jsoniter.StringValue {
				return t, errtrace.Wrap(newMalformedError(elPath, "expected property name"))
			}
			t.Name = iter.ReadString()
		case 1:
			if iter.WhatIsNext() != jsoniter.ObjectValue {
				return t, errtrace.Wrap(newMalformedError(elPath, "expected parameter object"))
			}
			var err error
			iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
				var v any
				if v, err = readJSONParam(iter, keyPath(elPath, key)); err != nil {
					return false
				}
				t.Params = append(t.Params, TupleParam{Name: key, Value: v})
				return true
			})
			if err != nil {
				return t, errtrace.Wrap(err)
			}
		case 2:
			if iter.WhatIsNext() != jsoniter.StringValue {
				return t, errtrace.Wrap(newMalformedError(elPath, "expected value type"))
			}
			t.Type = ValueType(iter.ReadString())
		case 3:
			v, err := readJSONScalar(iter, t.Type, elPath)
			if err != nil {
				return t, errtrace.Wrap(err)
			}
			t.Value = v
		default:
			return t, errtrace.Wrap(newMalformedError(elPath, "unexpected element"))
		}
		if err := iterError(iter, elPath); err != nil {
			return t, errtrace.Wrap(err)
		}
	}
	if err := iterError(iter, path); err != nil {
		return t, errtrace.Wrap(err)
	}
	if n != 4 {
		return t, errtrace.Wrap(newMalformedError(path, "expected 4 elements, got %d", n))
	}
	return t, nil
}

func readJSONParam(iter *jsoniter.Iterator, path string) (any, error) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString(), nil
	case jsoniter.ArrayValue:
		vals := []string{}
		for i := 0; iter.ReadArray(); i++ {
			if iter.WhatIsNext() != jsoniter.StringValue {
				return nil, errtrace.Wrap(newMalformedError(indexPath(path, i), "expected string"))
			}
			vals = append(vals, iter.ReadString())
		}
		return vals, nil
	default:
		return nil, errtrace.Wrap(newMalformedError(path, "expected string or list of strings"))
	}
}

func readJSONScalar(iter *jsoniter.Iterator, typ ValueType, path string) (any, error) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString(), nil
	case jsoniter.BoolValue:
		return iter.ReadBool(), nil
	case jsoniter.NumberValue:
		return numberValue(string(iter.ReadNumber())), nil
	case jsoniter.NilValue:
		iter.ReadNil()
		if typ == TypeInteger || typ == TypeFloat {
			return math.NaN(), nil
		}
		return nil, nil
	default:
		return nil, errtrace.Wrap(newMalformedError(path, "expected scalar value"))
	}
}

// numberValue keeps integers as int64 and everything else as float64.
func numberValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
