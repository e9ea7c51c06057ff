package vcard

import (
	"io"
	"strings"

	"braces.dev/errtrace"
	jsoniter "github.com/json-iterator/go"
)

// Parse parses all cards found in text.
//
// Parsing is permissive: malformed lines degrade to partially populated items,
// content outside BEGIN:VCARD/END:VCARD is ignored unless it is closed by a
// dangling END:VCARD, and an unterminated trailing card is dropped.
// Options are optional, see [ParseOptions].
func Parse(text string, opts *ParseOptions) []*Card {
	// reading from a string can fail only when a single line exceeds the buffer,
	// which is sized to fit the whole text
	cards, _ := newRecordScanner(opts).scan(unfold(strings.NewReader(text), len(text)+4096))
	return cards
}

// ParseReader parses all cards read from r.
// Cards completed before a read error are returned along with the error.
func ParseReader(r io.Reader, opts *ParseOptions) ([]*Card, error) {
	return errtrace.Wrap2(newRecordScanner(opts).scan(unfold(r, maxLineSize)))
}

// ParseTuples builds cards from their structured form.
// [ParseOptions.CardFilter] and [ParseOptions.ItemFilter] apply as for text input.
func ParseTuples(tuples []CardTuple, opts *ParseOptions) []*Card {
	cards := make([]*Card, 0, len(tuples))
	for _, t := range tuples {
		c := NewCardFromTuple(t, opts)
		if !opts.acceptCard(c) {
			opts.log().Debug("vcard rejected by filter", "card", c)
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

// ParseJSON builds cards from a JSON array of structured card forms,
// as produced by [MarshalJSON].
// A malformed document is reported with a [*ParseError].
func ParseJSON(data []byte, opts *ParseOptions) ([]*Card, error) {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	var tuples []CardTuple
	if iter.WhatIsNext() != jsoniter.ArrayValue {
		return nil, errtrace.Wrap(newMalformedError("", "expected array of cards"))
	}
	for i := 0; iter.ReadArray(); i++ {
		t, err := readCardTuple(iter, indexPath("", i))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		tuples = append(tuples, t)
	}
	if err := iterError(iter, ""); err != nil {
		return nil, errtrace.Wrap(err)
	}
	// only whitespace may follow the array, the iterator reports io.EOF then
	if iter.WhatIsNext(); iter.Error == nil {
		return nil, errtrace.Wrap(newMalformedError("", "unexpected data after array of cards"))
	}
	return ParseTuples(tuples, opts), nil
}
