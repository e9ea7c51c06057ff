package vcard

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/ioutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// SerializeOptions controls serialization of card lists.
type SerializeOptions struct {
	RenderOptions
	// CardFilter skips whole cards for which it returns false.
	CardFilter func(c *Card) bool
}

func (o *SerializeOptions) render() *RenderOptions {
	if o == nil {
		return nil
	}
	return &o.RenderOptions
}

func (o *SerializeOptions) acceptCard(c *Card) bool {
	return o == nil || o.CardFilter == nil || o.CardFilter(c)
}

// Serialize renders cards as text joined with [EOL].
// Cards that render to an empty string are omitted.
func Serialize(cards []*Card, opts *SerializeOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	SerializeTo(sb, cards, opts) //nolint:errcheck
	return sb.String()
}

// SerializeTo writes cards rendered as text to w.
func SerializeTo(w io.Writer, cards []*Card, opts *SerializeOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	ropts := opts.render()
	for _, c := range cards {
		if !opts.acceptCard(c) {
			continue
		}
		lines := c.renderLines(ropts)
		if len(lines) == 0 {
			continue
		}
		if cw.Count() > 0 {
			cw.WriteString(EOL) //nolint:errcheck
		}
		if cw.Call(func(w io.Writer) (int, error) { return writeCardLines(w, lines) }).Err() != nil {
			break
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// SerializeTuples renders structured card forms as text, see [Serialize].
func SerializeTuples(tuples []CardTuple, opts *SerializeOptions) string {
	return Serialize(ParseTuples(tuples, nil), opts)
}
