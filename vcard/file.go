package vcard

import (
	"bytes"
	"os"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// ReadOptions configures [ReadFile].
type ReadOptions struct {
	ParseOptions
	// Charset is the IANA name of the file text encoding.
	// If empty, UTF-8 is assumed.
	Charset string
}

func (o *ReadOptions) charset() string {
	if o == nil {
		return ""
	}
	return o.Charset
}

func (o *ReadOptions) parse(path string) *ParseOptions {
	var po ParseOptions
	if o != nil {
		po = o.ParseOptions
	}
	if po.Source == "" {
		po.Source = path
	}
	return &po
}

// LookupCharset resolves an IANA charset name.
// An empty name resolves to UTF-8.
func LookupCharset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || util.EqFold(name, "utf-8") || util.EqFold(name, "utf8") {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownCharset, "%q: %v", name, err))
	}
	if enc == nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownCharset, "%q is not supported", name))
	}
	return enc, nil
}

// ReadFile reads the file at path, decodes it from the configured charset and parses it.
//
// It returns the parsed cards, the decoded text and the first I/O or decoding error.
// The cards carry the path as their source unless [ParseOptions.Source] is set.
// Options are optional, see [ReadOptions].
func ReadFile(path string, opts *ReadOptions) ([]*Card, string, error) {
	enc, err := LookupCharset(opts.charset())
	if err != nil {
		return nil, "", errtrace.Wrap(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errtrace.Wrap(err)
	}
	if data, err = enc.NewDecoder().Bytes(data); err != nil {
		return nil, "", errtrace.Wrap(errorutil.NewWrapperError(ErrDecode, err))
	}
	text := string(bytes.TrimPrefix(data, []byte("\ufeff")))

	po := opts.parse(path)
	po.log().Debug("vcard file read", "path", path, "size", len(data))
	return Parse(text, po), text, nil
}
