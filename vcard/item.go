package vcard

import (
	"log/slog"

	"github.com/ghettovoice/govcard/internal/util"
)

// Item is a single vCard property line: NAME;PARAMS:VALUE.
//
// Value holds the raw text of the property, still encoded when the ENCODING
// parameter is present. Use [Item.Decode] to obtain the plain text and
// [Item.Encode] to store a plain text value.
type Item struct {
	Name   string
	Params Params
	Value  string
	Type   ValueType
}

// NewItem parses a logical (unfolded) property line.
//
// Parsing never fails: unrecognized fragments are kept as the value or
// treated as bare TYPE parameters, in the worst case the item ends up with an
// empty name and value.
func NewItem(line string) *Item {
	it := &Item{Type: TypeText}
	it.parse(line)
	return it
}

// NewItemFromTuple builds an item from its structured form.
// The value is passed through [Item.Encode], so a tuple produced by [Item.Tuple]
// gives back an item with the same encoded value.
func NewItemFromTuple(t ItemTuple) *Item {
	it := &Item{Name: t.Name, Type: t.Type}
	if it.Type == "" {
		it.Type = TypeText
	}
	for _, p := range t.Params {
		switch v := p.Value.(type) {
		case []string:
			if util.EqFold(p.Name, ParamType) {
				for _, s := range v {
					it.setParam(p.Name, s)
				}
				continue
			}
			it.Params.Add(p.Name, v...)
		default:
			it.setParam(p.Name, stringify(v))
		}
	}

	value := stringify(t.Value)
	it.Encode(value)
	if t.Type != "" && !it.Params.Has(ParamValue) && t.Type != inferType(it.Name, value) {
		it.Params.Add(ParamValue, string(t.Type))
	}
	return it
}

// IsMarker reports whether the item is a BEGIN or END record marker.
func (it *Item) IsMarker() bool {
	return it != nil && (util.EqFold(it.Name, PropBegin) || util.EqFold(it.Name, PropEnd))
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	it2 := *it
	it2.Params = it.Params.Clone()
	return &it2
}

// LogValue implements [slog.LogValuer].
func (it *Item) LogValue() slog.Value {
	if it == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("name", it.Name),
		slog.String("type", string(it.Type)),
		slog.String("value", util.Ellipsis(it.Value, 32)),
	)
}
