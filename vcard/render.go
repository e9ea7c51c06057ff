package vcard

import (
	"io"
	"strings"
	"unicode"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/util"
)

// RenderOptions controls rendering of cards and items.
type RenderOptions struct {
	// Version is the target vCard version.
	// If empty, the version of the card is used, or [DefaultVersion] for a standalone item.
	Version string
	// Filter skips items for which it returns false. It is applied by card rendering only.
	Filter func(it *Item) bool
	// Replace post-processes each rendered, folded line.
	Replace func(line string, it *Item) string
}

func (o *RenderOptions) version(fallback string) string {
	if o != nil && o.Version != "" {
		return o.Version
	}
	if fallback != "" {
		return fallback
	}
	return DefaultVersion
}

func (o *RenderOptions) replace() func(string, *Item) string {
	if o == nil {
		return nil
	}
	return o.Replace
}

func (o *RenderOptions) accept(it *Item) bool {
	return o == nil || o.Filter == nil || o.Filter(it)
}

// Render returns the item rendered as a (possibly folded) line without the trailing line break.
// An empty string is returned when the item has no value.
func (it *Item) Render(opts *RenderOptions) string {
	if it == nil {
		return ""
	}
	return it.render(opts.version(""), opts.replace())
}

// RenderTo writes the rendered item to w.
func (it *Item) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, it.Render(opts)))
}

// String returns the item rendered for [DefaultVersion].
func (it *Item) String() string { return it.Render(nil) }

func (it *Item) render(version string, replace func(string, *Item) string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	modern, legacy := versionClass(version)
	name := util.UCase(it.Name)
	value := it.Value

	sb.WriteString(name)
	for _, p := range it.Params {
		key := util.UCase(p.Name)

		if version == Version21 && key == ParamType {
			if v := strings.Join(p.Values, ";"); v != "" {
				sb.WriteByte(';')
				if name == PropPhoto {
					sb.WriteString(key + "=")
				}
				sb.WriteString(v)
			}
			continue
		}

		if name == PropIMPP && p.IsList() {
			for _, v := range p.Values {
				if v != "" {
					sb.WriteString(";" + key + "=" + v)
				}
			}
			continue
		}

		v := strings.Join(p.Values, ",")
		if key == ParamEncoding {
			if prefix := dataURIPrefix(value); prefix != "" || parseEncoding(v) == EncodingBase64 {
				v = base64Marker(version)
				value = value[len(prefix):]
			}
		}
		if v == "" {
			continue
		}

		sb.WriteString(";" + key + "=")
		if modern && strings.ContainsFunc(v, unicode.IsSpace) {
			sb.WriteString(`"` + v + `"`)
		} else {
			sb.WriteString(v)
		}
	}

	if legacy {
		value = util.TrimPrefixFold(value, "geo:")
	}

	switch {
	case name == PropVersion:
		sb.WriteString(":" + version)
	case value != "":
		sb.WriteString(":" + value)
	default:
		return ""
	}

	line := fold(sb.String(), version)
	if replace != nil {
		line = replace(line, it)
	}
	return line
}

// base64Marker returns the ENCODING value flagging base64 data in the given version.
// vCard 4.0 carries base64 data inline in data: URIs, so there is no marker.
func base64Marker(version string) string {
	switch version {
	case Version21:
		return "BASE64"
	case Version30:
		return "b"
	default:
		return ""
	}
}

// dataURIPrefix returns the "data:<mediatype>;base64," prefix of s, if any.
func dataURIPrefix(s string) string {
	const scheme, marker = "data:", ";base64,"
	if !strings.HasPrefix(s, scheme) {
		return ""
	}
	if i := strings.LastIndex(s, marker); i > len(scheme) {
		return s[:i+len(marker)]
	}
	return ""
}

// fold breaks lines longer than [MaxWidth] characters: the first physical line
// holds 75 characters, every continuation line a single space and 74 characters.
func fold(line, version string) string {
	if util.RuneLen(line) <= MaxWidth {
		return line
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	runes := []rune(line)
	width := 75
	for len(runes) > 0 {
		n := min(width, len(runes))
		if sb.Len() > 0 {
			sb.WriteString(EOL + " ")
		}
		sb.WriteString(string(runes[:n]))
		runes = runes[n:]
		width = 74
	}
	if version == Version21 {
		sb.WriteString(EOL)
	}
	return sb.String()
}
