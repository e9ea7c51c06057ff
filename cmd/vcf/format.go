package main

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/govcard/internal/config"
	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/vcard"
)

// formatOf picks the structured form format: the flag wins, then the file extension, then the fallback.
func formatOf(flag, path, fallback string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".jcard":
			format = config.FormatJSON
		case ".yaml", ".yml":
			format = config.FormatYAML
		case ".cbor":
			format = config.FormatCBOR
		default:
			format = fallback
		}
	}
	if !slices.Contains(config.Formats, format) {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError(
			"unsupported format %q, expected one of %s", format, strings.Join(config.Formats, ", ")))
	}
	return format, nil
}

func encodeCards(w io.Writer, format string, cards []*vcard.Card) error {
	if format == config.FormatJSON {
		data, err := vcard.MarshalJSON(cards)
		if err != nil {
			return errtrace.Wrap(err)
		}
		_, err = w.Write(append(data, '\n'))
		return errtrace.Wrap(err)
	}

	tree := make([]any, len(cards))
	for i, c := range cards {
		tree[i] = c.Tuple().Any()
	}
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(enc.Close())
	default:
		return errtrace.Wrap(cbor.NewEncoder(w).Encode(tree))
	}
}

func decodeCards(data []byte, format string, opts *vcard.ParseOptions) ([]*vcard.Card, error) {
	if format == config.FormatJSON {
		return errtrace.Wrap2(vcard.ParseJSON(data, opts))
	}

	var (
		tree any
		err  error
	)
	switch format {
	case config.FormatYAML:
		err = yaml.Unmarshal(data, &tree)
	default:
		err = cbor.Unmarshal(data, &tree)
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	tuples, err := vcard.CardTuplesFromAny(tree)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return vcard.ParseTuples(tuples, opts), nil
}
