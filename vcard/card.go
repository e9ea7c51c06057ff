package vcard

import (
	"io"
	"log/slog"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/ioutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// Card is a single vCard record: an ordered list of property items.
//
// The version is derived once from the first VERSION line of the source and
// is never re-derived, even if VERSION items are later added or removed.
// A Card is not safe for concurrent mutation.
type Card struct {
	items   []*Item
	version string
	source  string
}

// NewCard builds a card from logical property lines, without BEGIN/END markers.
// Options are optional, see [ParseOptions].
func NewCard(lines []string, opts *ParseOptions) *Card {
	c := &Card{
		version: versionOfLines(lines),
		source:  opts.source(),
	}
	obs := opts.observer()
	for _, line := range lines {
		it := NewItem(line)
		obs.ObserveItem(it)
		if opts.acceptItem(it) {
			c.items = append(c.items, it)
		}
	}
	obs.ObserveCard(c)
	return c
}

// NewCardFromTuple builds a card from its structured form.
// Options are optional, see [ParseOptions].
func NewCardFromTuple(t CardTuple, opts *ParseOptions) *Card {
	c := &Card{
		version: versionOfTuples(t.Items),
		source:  opts.source(),
	}
	obs := opts.observer()
	for _, tt := range t.Items {
		it := NewItemFromTuple(tt)
		obs.ObserveItem(it)
		if opts.acceptItem(it) {
			c.items = append(c.items, it)
		}
	}
	obs.ObserveCard(c)
	return c
}

func versionOfLines(lines []string) string {
	const prefix = PropVersion + ":"
	for _, line := range lines {
		if util.HasPrefixFold(line, prefix) {
			return line[len(prefix):]
		}
	}
	return ""
}

func versionOfTuples(items []ItemTuple) string {
	for _, t := range items {
		if util.EqFold(t.Name, PropVersion) {
			return stringify(t.Value)
		}
	}
	return ""
}

// Version returns the version the card was read with, or an empty string when it is unknown.
func (c *Card) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}

// Source returns the diagnostic identifier of the card origin, e.g. a file path.
func (c *Card) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// Items returns the card items in order.
// The returned slice is a copy, the items are shared.
func (c *Card) Items() []*Item {
	if c == nil {
		return nil
	}
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Card) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Find returns all items with the given name, compared case-insensitively, in card order.
func (c *Card) Find(name string) []*Item {
	return c.FindFunc(func(it *Item) bool { return util.EqFold(it.Name, name) })
}

// FindFunc returns all items matching fn in card order.
func (c *Card) FindFunc(fn func(it *Item) bool) []*Item {
	if c == nil {
		return nil
	}
	var found []*Item
	for _, it := range c.items {
		if fn(it) {
			found = append(found, it)
		}
	}
	return found
}

// Add parses a property line, appends the item to the card and returns it.
func (c *Card) Add(line string) *Item {
	it := NewItem(line)
	c.items = append(c.items, it)
	return it
}

// AddTuple builds an item from its structured form, appends it to the card and returns it.
func (c *Card) AddTuple(t ItemTuple) *Item {
	it := NewItemFromTuple(t)
	c.items = append(c.items, it)
	return it
}

// Remove removes every item with the given name, compared case-insensitively,
// and returns the number of removed items.
func (c *Card) Remove(name string) int {
	if c == nil {
		return 0
	}
	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(it *Item) bool { return util.EqFold(it.Name, name) })
	return n - len(c.items)
}

// Render returns the card rendered as text: property lines wrapped in BEGIN:VCARD/END:VCARD
// and joined with [EOL], without a trailing line break.
// A card with no renderable items gives an empty string.
func (c *Card) Render(opts *RenderOptions) string {
	if c == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	c.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// RenderTo writes the rendered card to w.
func (c *Card) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(writeCardLines(w, c.renderLines(opts)))
}

// renderLines renders the accepted items, markers excluded.
// Nil is returned when no item renders to a non-empty line.
func (c *Card) renderLines(opts *RenderOptions) []string {
	if c == nil {
		return nil
	}

	version := opts.version(c.version)
	replace := opts.replace()

	var lines []string
	for _, it := range c.items {
		if it.IsMarker() || !opts.accept(it) {
			continue
		}
		if line := it.render(version, replace); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func writeCardLines(w io.Writer, lines []string) (num int, err error) {
	if len(lines) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteStrings(PropBegin, ":VCARD")
	for _, line := range lines {
		cw.WriteStrings(EOL, line)
	}
	cw.WriteStrings(EOL, PropEnd, ":VCARD")
	return errtrace.Wrap2(cw.Result())
}

// String returns the card rendered with its own version.
func (c *Card) String() string { return c.Render(nil) }

// Tuple returns the structured form of the card, BEGIN/END markers excluded.
func (c *Card) Tuple() CardTuple {
	var t CardTuple
	if c == nil {
		return t
	}
	for _, it := range c.items {
		if it.IsMarker() {
			continue
		}
		t.Items = append(t.Items, it.Tuple())
	}
	return t
}

// LogValue implements [slog.LogValuer].
func (c *Card) LogValue() slog.Value {
	if c == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 4)
	if c.source != "" {
		attrs = append(attrs, slog.String("source", c.source))
	}
	attrs = append(attrs, slog.String("version", c.version), slog.Int("items", len(c.items)))
	if fn := c.Find("FN"); len(fn) > 0 {
		attrs = append(attrs, slog.String("fn", util.Ellipsis(fn[0].Value, 32)))
	}
	return slog.GroupValue(attrs...)
}
