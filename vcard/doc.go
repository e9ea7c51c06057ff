// Package vcard implements a forgiving codec for the vCard (VCF) contact format,
// versions 2.1, 3.0 and 4.0.
//
// Text is unfolded into logical lines, grouped into [Card] records bounded by
// BEGIN:VCARD/END:VCARD markers and split into [Item] properties holding a name,
// ordered [Params] and the raw value. Parsing never fails on malformed input:
// unrecognized fragments degrade into partially populated items. Strict validation
// is left to the caller.
//
// Cards render back to text for a target version with [Card.Render] or [Serialize],
// which apply per-version parameter formatting, base64 marker normalization and
// line folding. [Card.Tuple] and [Item.Tuple] bridge the model into a plain
// structured form (jCard-like arrays) suitable for JSON and other transports.
package vcard

//go:generate go tool errtrace -w .
