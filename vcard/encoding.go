package vcard

import (
	"bufio"
	"io"
	"mime/quotedprintable"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// Encoding returns the transfer encoding declared by the ENCODING parameter.
func (it *Item) Encoding() Encoding {
	v, _ := it.Params.First(ParamEncoding)
	return parseEncoding(v)
}

func parseEncoding(s string) Encoding {
	switch {
	case util.EqFold(s, "QUOTED-PRINTABLE"):
		return EncodingQuotedPrintable
	case util.EqFold(s, "BASE64"), util.EqFold(s, "B"):
		return EncodingBase64
	default:
		return EncodingNone
	}
}

// Encode stores the plain text value according to the ENCODING parameter.
//
// Quoted-printable values are encoded from UTF-8 and the item is marked with
// ENCODING=QUOTED-PRINTABLE and CHARSET=UTF-8. Base64 values are expected to be
// base64 text already and are stored verbatim, as are values of items without
// an ENCODING parameter.
func (it *Item) Encode(value string) {
	switch it.Encoding() {
	case EncodingQuotedPrintable:
		it.Value = encodeQuotedPrintable(value)
		it.Params.Set(ParamCharset, "UTF-8")
		it.Params.Set(ParamEncoding, EncodingQuotedPrintable.String())
	case EncodingBase64:
		it.Value = value
		if !it.Params.Has(ParamEncoding) {
			it.Params.Set(ParamEncoding, EncodingBase64.String())
		}
	default:
		it.Value = value
	}
}

// Decode returns the plain text value, the inverse of [Item.Encode].
// Items without an ENCODING parameter and base64 items return the value as is.
func (it *Item) Decode() (string, error) {
	if it.Encoding() == EncodingQuotedPrintable {
		return errtrace.Wrap2(decodeQuotedPrintable(it.Value))
	}
	return it.Value, nil
}

// encodeQuotedPrintable encodes s in binary mode, so line breaks inside the value
// become =0D=0A, and drops the soft line breaks: folding is done by the renderer.
func encodeQuotedPrintable(s string) string {
	if s == "" {
		return ""
	}

	buf := util.GetBytesBuffer()
	defer util.FreeBytesBuffer(buf)

	w := quotedprintable.NewWriter(buf)
	w.Binary = true
	// writes to bytes.Buffer never fail
	_, _ = io.WriteString(w, s)
	_ = w.Close()
	return strings.ReplaceAll(buf.String(), "=\r\n", "")
}

func decodeQuotedPrintable(s string) (string, error) {
	// the reader works line by line, the buffer must fit the whole unfolded value
	br := bufio.NewReaderSize(strings.NewReader(s), len(s)+1)
	b, err := io.ReadAll(quotedprintable.NewReader(br))
	if err != nil {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrDecode, err))
	}
	if !utf8.Valid(b) {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrDecode, "invalid UTF-8 sequence"))
	}
	return string(b), nil
}
