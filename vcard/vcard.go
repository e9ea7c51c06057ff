package vcard

import (
	"strconv"
	"strings"
)

// Well-known vCard versions.
const (
	Version21 = "2.1"
	Version30 = "3.0"
	Version40 = "4.0"
	// DefaultVersion is the render version used when neither the options nor the card specify one.
	DefaultVersion = Version40
)

const (
	// EOL terminates every rendered physical line.
	EOL = "\r\n"
	// MaxWidth is the longest logical line rendered without folding.
	MaxWidth = 1024
)

// Property and parameter names with special treatment.
const (
	PropBegin   = "BEGIN"
	PropEnd     = "END"
	PropVersion = "VERSION"
	PropPhoto   = "PHOTO"
	PropIMPP    = "IMPP"
	PropLang    = "LANG"
	PropRev     = "REV"

	ParamType     = "TYPE"
	ParamEncoding = "ENCODING"
	ParamCharset  = "CHARSET"
	ParamValue    = "VALUE"
	ParamLabel    = "LABEL"
)

// ValueType is the type tag of a property value.
type ValueType string

const (
	TypeText        ValueType = "text"
	TypeURI         ValueType = "uri"
	TypeTimestamp   ValueType = "timestamp"
	TypeLanguageTag ValueType = "language-tag"
	TypeBoolean     ValueType = "boolean"
	TypeInteger     ValueType = "integer"
	TypeFloat       ValueType = "float"
)

// Encoding is the transfer encoding declared by the ENCODING parameter.
type Encoding int

const (
	EncodingNone Encoding = iota
	EncodingQuotedPrintable
	EncodingBase64
)

func (e Encoding) String() string {
	switch e {
	case EncodingQuotedPrintable:
		return "QUOTED-PRINTABLE"
	case EncodingBase64:
		return "BASE64"
	default:
		return ""
	}
}

// versionClass reports whether version compares numerically as >= 4 or < 4.
// Non-numeric versions are neither.
func versionClass(version string) (modern, legacy bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(version), 64)
	if err != nil {
		return false, false
	}
	return f >= 4, f < 4
}
