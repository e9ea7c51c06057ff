package vcard

import (
	"strings"

	"github.com/ghettovoice/govcard/internal/util"
)

// parse scans a logical line left to right without backtracking:
//
//	name *( ";" ( key "=" DQUOTE value DQUOTE / key "=" value / value ) ) ":" value
//
// A bare ";value" is a legacy implicit TYPE value.
func (it *Item) parse(line string) {
	n := scanName(line)
	it.Name, line = line[:n], line[n:]

	for line != "" {
		if line[0] == ':' {
			it.Value = line[1:]
			break
		}

		line = strings.TrimPrefix(line, ";")
		if line == "" || line[0] == ':' {
			continue
		}

		if k := scanKey(line); k > 0 {
			key, rest := line[:k], line[k+1:]
			var val string
			if strings.HasPrefix(rest, `"`) {
				val, line = cutUnescaped(rest[1:], `"`)
				line = strings.TrimPrefix(line, `"`)
			} else {
				val, line = cutUnescaped(rest, ";:")
			}
			it.setParam(key, val)
			continue
		}

		if i := indexUnescaped(line, ";:"); i >= 0 {
			if i > 0 {
				it.setParam(ParamType, line[:i])
			}
			line = line[i:]
			continue
		}

		it.Value = line
		break
	}

	it.Type = inferType(it.Name, it.Value)
}

func (it *Item) setParam(name, value string) {
	if util.EqFold(name, ParamType) {
		it.Params.Add(ParamType, splitList(value)...)
		return
	}
	it.Params.Add(name, value)
}

func inferType(name, value string) ValueType {
	switch {
	case util.EqFold(name, PropLang):
		return TypeLanguageTag
	case util.EqFold(name, PropRev):
		return TypeTimestamp
	case util.HasPrefixFold(value, "http://"), util.HasPrefixFold(value, "https://"):
		return TypeURI
	default:
		return TypeText
	}
}

func isNameChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_' || c == '-'
}

// scanName returns the length of the property name at the start of s.
// The name must be followed by ':', ';' or the end of s, otherwise 0 is returned.
func scanName(s string) int {
	i := 0
	for i < len(s) && isNameChar(s[i]) {
		i++
	}
	if i == 0 || i < len(s) && s[i] != ':' && s[i] != ';' {
		return 0
	}
	return i
}

// scanKey returns the length of a parameter key followed by '=' at the start of s, or 0.
func scanKey(s string) int {
	i := 0
	for i < len(s) && isNameChar(s[i]) {
		i++
	}
	if i == 0 || i == len(s) || s[i] != '=' {
		return 0
	}
	return i
}

// indexUnescaped returns the index of the first byte of s that is one of seps
// and is not escaped with a backslash, or -1.
func indexUnescaped(s, seps string) int {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			i++
		case strings.IndexByte(seps, c) >= 0:
			return i
		}
	}
	return -1
}

// cutUnescaped splits s at the first unescaped separator from seps.
// The separator stays at the start of rest, which is empty when there is none.
func cutUnescaped(s, seps string) (before, rest string) {
	if i := indexUnescaped(s, seps); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// splitList splits a comma separated list on unescaped commas and trims the surrounding whitespace.
func splitList(s string) []string {
	var vals []string
	for {
		v, rest := cutUnescaped(s, ",")
		vals = append(vals, strings.TrimSpace(v))
		if rest == "" {
			return vals
		}
		s = rest[1:]
	}
}
