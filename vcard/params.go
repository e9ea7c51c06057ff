package vcard

import (
	"slices"

	"github.com/ghettovoice/govcard/internal/util"
)

// Param is a named property parameter with one or more values.
type Param struct {
	Name   string
	Values []string
}

// IsList reports whether the parameter is list-valued.
// TYPE is always a list, other parameters become lists once they hold more than one value.
func (p Param) IsList() bool { return len(p.Values) > 1 || p.Name == ParamType }

// Value returns the first value or an empty string.
func (p Param) Value() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}

// Params is an ordered list of property parameters.
// Names are stored upper-cased and looked up case-insensitively.
type Params []Param

func (ps Params) index(name string) int {
	return slices.IndexFunc(ps, func(p Param) bool { return util.EqFold(p.Name, name) })
}

// Get returns values associated with the given name.
func (ps Params) Get(name string) []string {
	if i := ps.index(name); i >= 0 {
		return ps[i].Values
	}
	return nil
}

// First returns the first value associated with the given name.
func (ps Params) First(name string) (string, bool) {
	if i := ps.index(name); i >= 0 && len(ps[i].Values) > 0 {
		return ps[i].Values[0], true
	}
	return "", false
}

// Has checks whether a parameter with the given name is present.
func (ps Params) Has(name string) bool { return ps.index(name) >= 0 }

// Add appends values to the parameter with the given name.
// A missing parameter is added to the end of the list, an existing one keeps its position.
func (ps *Params) Add(name string, values ...string) *Params {
	if i := ps.index(name); i >= 0 {
		(*ps)[i].Values = append((*ps)[i].Values, values...)
		return ps
	}
	*ps = append(*ps, Param{Name: util.UCase(name), Values: slices.Clone(values)})
	return ps
}

// Set replaces values of the parameter with the given name.
func (ps *Params) Set(name string, values ...string) *Params {
	if i := ps.index(name); i >= 0 {
		(*ps)[i].Values = slices.Clone(values)
		return ps
	}
	return ps.Add(name, values...)
}

// Del removes the parameter with the given name.
func (ps *Params) Del(name string) *Params {
	*ps = slices.DeleteFunc(*ps, func(p Param) bool { return util.EqFold(p.Name, name) })
	return ps
}

// Clone returns a deep copy of the list.
func (ps Params) Clone() Params {
	if ps == nil {
		return nil
	}
	ps2 := make(Params, len(ps))
	for i, p := range ps {
		ps2[i] = Param{Name: p.Name, Values: slices.Clone(p.Values)}
	}
	return ps2
}
