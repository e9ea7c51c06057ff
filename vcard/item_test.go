package vcard_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/govcard/vcard"
)

func TestNewItem(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
		want *vcard.Item
	}{
		{"empty", "", &vcard.Item{Type: vcard.TypeText}},
		{"only name", "NOTE", &vcard.Item{Name: "NOTE", Type: vcard.TypeText}},
		{"only value", ":hello", &vcard.Item{Value: "hello", Type: vcard.TypeText}},
		{
			"simple",
			"FN:Albert Einstein",
			&vcard.Item{Name: "FN", Value: "Albert Einstein", Type: vcard.TypeText},
		},
		{
			"value with colons",
			"NOTE:a:b:c",
			&vcard.Item{Name: "NOTE", Value: "a:b:c", Type: vcard.TypeText},
		},
		{
			"repeated type",
			"TEL;TYPE=HOME;TYPE=VOICE:+1 555",
			&vcard.Item{
				Name:   "TEL",
				Params: vcard.Params{{Name: "TYPE", Values: []string{"HOME", "VOICE"}}},
				Value:  "+1 555",
				Type:   vcard.TypeText,
			},
		},
		{
			"comma list type",
			"TEL;type=home , voice:1",
			&vcard.Item{
				Name:   "TEL",
				Params: vcard.Params{{Name: "TYPE", Values: []string{"home", "voice"}}},
				Value:  "1",
				Type:   vcard.TypeText,
			},
		},
		{
			"bare types",
			"TEL;HOME;VOICE:1",
			&vcard.Item{
				Name:   "TEL",
				Params: vcard.Params{{Name: "TYPE", Values: []string{"HOME", "VOICE"}}},
				Value:  "1",
				Type:   vcard.TypeText,
			},
		},
		{
			"quoted param",
			`EMAIL;TYPE="work, internet";PREF=1:a@example.com`,
			&vcard.Item{
				Name: "EMAIL",
				Params: vcard.Params{
					{Name: "TYPE", Values: []string{"work", "internet"}},
					{Name: "PREF", Values: []string{"1"}},
				},
				Value: "a@example.com",
				Type:  vcard.TypeText,
			},
		},
		{
			"escaped separators",
			`NOTE;X-A=a\;b\:c:text`,
			&vcard.Item{
				Name:   "NOTE",
				Params: vcard.Params{{Name: "X-A", Values: []string{`a\;b\:c`}}},
				Value:  "text",
				Type:   vcard.TypeText,
			},
		},
		{
			"repeated param",
			"X-A;X-B=1;x-b=2:v",
			&vcard.Item{
				Name:   "X-A",
				Params: vcard.Params{{Name: "X-B", Values: []string{"1", "2"}}},
				Value:  "v",
				Type:   vcard.TypeText,
			},
		},
		{
			"empty bare type",
			"TEL;;:1",
			&vcard.Item{Name: "TEL", Value: "1", Type: vcard.TypeText},
		},
		{"uri", "URL:https://example.com", &vcard.Item{Name: "URL", Value: "https://example.com", Type: vcard.TypeURI}},
		{"lang", "LANG:en", &vcard.Item{Name: "LANG", Value: "en", Type: vcard.TypeLanguageTag}},
		{"rev", "REV:20240101T000000Z", &vcard.Item{Name: "REV", Value: "20240101T000000Z", Type: vcard.TypeTimestamp}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(vcard.NewItem(c.line), c.want); diff != "" {
				t.Errorf("vcard.NewItem(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.line, vcard.NewItem(c.line), c.want, diff)
			}
		})
	}
}

func TestItem_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		item    *vcard.Item
		version string
		want    string
	}{
		{"nil", nil, "4.0", ""},
		{"empty value", vcard.NewItem("NOTE:"), "4.0", ""},
		{"name upper case", vcard.NewItem("fn:Albert"), "4.0", "FN:Albert"},
		{"type 4.0", vcard.NewItem("TEL;TYPE=HOME,VOICE:1"), "4.0", "TEL;TYPE=HOME,VOICE:1"},
		{"type 3.0", vcard.NewItem("TEL;TYPE=HOME,VOICE:1"), "3.0", "TEL;TYPE=HOME,VOICE:1"},
		{"type 2.1", vcard.NewItem("TEL;TYPE=HOME,VOICE:1"), "2.1", "TEL;HOME;VOICE:1"},
		{"photo type 2.1", vcard.NewItem("PHOTO;TYPE=JPEG:AAAA"), "2.1", "PHOTO;TYPE=JPEG:AAAA"},
		{"impp list", vcard.NewItem("IMPP;TYPE=home,pref:xmpp:a@example.com"), "4.0", "IMPP;TYPE=home;TYPE=pref:xmpp:a@example.com"},
		{"geo 3.0", vcard.NewItem("GEO:geo:37.38,-122.08"), "3.0", "GEO:37.38,-122.08"},
		{"geo 4.0", vcard.NewItem("GEO:geo:37.38,-122.08"), "4.0", "GEO:geo:37.38,-122.08"},
		{"version override", vcard.NewItem("VERSION:2.1"), "4.0", "VERSION:4.0"},
		{"quoted 4.0", vcard.NewItem("ADR;LABEL=123 Main St:;;123 Main St"), "4.0", `ADR;LABEL="123 Main St":;;123 Main St`},
		{"unquoted 3.0", vcard.NewItem("ADR;LABEL=123 Main St:;;123 Main St"), "3.0", "ADR;LABEL=123 Main St:;;123 Main St"},
		{"base64 2.1", vcard.NewItem("PHOTO;ENCODING=b;TYPE=JPEG:AAAA"), "2.1", "PHOTO;ENCODING=BASE64;TYPE=JPEG:AAAA"},
		{"base64 3.0", vcard.NewItem("PHOTO;ENCODING=BASE64;TYPE=JPEG:AAAA"), "3.0", "PHOTO;ENCODING=b;TYPE=JPEG:AAAA"},
		{"base64 4.0", vcard.NewItem("PHOTO;ENCODING=b;TYPE=JPEG:AAAA"), "4.0", "PHOTO;TYPE=JPEG:AAAA"},
		{
			"data uri 4.0",
			vcard.NewItem("PHOTO;ENCODING=BASE64:data:image/jpeg;base64,AAAA"),
			"4.0",
			"PHOTO:AAAA",
		},
		{
			"quoted-printable",
			vcard.NewItem("NOTE;ENCODING=QUOTED-PRINTABLE;CHARSET=UTF-8:Gr=C3=BC=C3=9Fe"),
			"2.1",
			"NOTE;ENCODING=QUOTED-PRINTABLE;CHARSET=UTF-8:Gr=C3=BC=C3=9Fe",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			opts := &vcard.RenderOptions{Version: c.version}
			if got := c.item.Render(opts); got != c.want {
				t.Errorf("item.Render(%+v) = %q, want %q", opts, got, c.want)
			}
		})
	}
}

func TestItem_Render_DefaultVersion(t *testing.T) {
	t.Parallel()

	it := vcard.NewItem("VERSION:3.0")
	if got, want := it.String(), "VERSION:"+vcard.DefaultVersion; got != want {
		t.Errorf("item.String() = %q, want %q", got, want)
	}
}

func TestItem_Render_Replace(t *testing.T) {
	t.Parallel()

	it := vcard.NewItem("NOTE:Hello")
	opts := &vcard.RenderOptions{
		Replace: func(line string, it *vcard.Item) string {
			return line + ";" + it.Name
		},
	}
	if got, want := it.Render(opts), "NOTE:Hello;NOTE"; got != want {
		t.Errorf("item.Render(opts) = %q, want %q", got, want)
	}
}

func TestItem_Render_Fold(t *testing.T) {
	t.Parallel()

	value := strings.Repeat("abcdefghij", 200)
	it := vcard.NewItem("NOTE:" + value)

	for _, version := range []string{"2.1", "3.0", "4.0"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			got := it.Render(&vcard.RenderOptions{Version: version})
			if version == "2.1" {
				if !strings.HasSuffix(got, "\r\n") {
					t.Fatalf("folded 2.1 line must end with CRLF, got %q", got[len(got)-10:])
				}
				got = strings.TrimSuffix(got, "\r\n")
			}

			lines := strings.Split(got, "\r\n")
			if len(lines) < 2 {
				t.Fatalf("expected folded line, got %d physical lines", len(lines))
			}
			if n := len(lines[0]); n != 75 {
				t.Errorf("first physical line length = %d, want 75", n)
			}
			for i, line := range lines[1:] {
				if !strings.HasPrefix(line, " ") || strings.HasPrefix(line, "  ") {
					t.Errorf("line %d = %q, want exactly one leading space", i+1, line)
				}
				if n := len(line); n > 75 {
					t.Errorf("line %d length = %d, want <= 75", i+1, n)
				}
			}

			text := "BEGIN:VCARD\r\nVERSION:" + version + "\r\n" + got + "\r\nEND:VCARD"
			cards := vcard.Parse(text, nil)
			if len(cards) != 1 {
				t.Fatalf("vcard.Parse(folded) returned %d cards, want 1", len(cards))
			}
			notes := cards[0].Find("NOTE")
			if len(notes) != 1 || notes[0].Value != value {
				t.Errorf("unfolded NOTE does not match the original value")
			}
		})
	}
}

func TestItem_EncodeDecode(t *testing.T) {
	t.Parallel()

	values := []string{
		"",
		"plain",
		"Grüße, 世界",
		"line1\r\nline2\nline3",
		"a=b;c:d",
		"trailing space ",
		"tab\tinside",
		strings.Repeat("long ünïcode value ", 30),
		"SGVsbG8sIHdvcmxkIQ==",
	}

	for _, enc := range []string{"QUOTED-PRINTABLE", "BASE64", "b"} {
		for _, v := range values {
			it := &vcard.Item{Name: "NOTE", Type: vcard.TypeText}
			it.Params.Set(vcard.ParamEncoding, enc)
			it.Encode(v)

			got, err := it.Decode()
			if err != nil {
				t.Errorf("[%s] item.Decode() error = %v, want nil", enc, err)
				continue
			}
			if got != v {
				t.Errorf("[%s] item.Decode() = %q, want %q", enc, got, v)
			}
		}
	}
}

func TestItem_Encode(t *testing.T) {
	t.Parallel()

	it := vcard.NewItem("NOTE;ENCODING=quoted-printable:")
	it.Encode("Grüße")
	if got, want := it.Render(nil), "NOTE;ENCODING=QUOTED-PRINTABLE;CHARSET=UTF-8:Gr=C3=BC=C3=9Fe"; got != want {
		t.Errorf("item.Render(nil) = %q, want %q", got, want)
	}

	it = vcard.NewItem("NOTE:")
	it.Encode("plain")
	if it.Value != "plain" || len(it.Params) != 0 {
		t.Errorf("item without encoding: Value = %q, Params = %v, want %q and no params", it.Value, it.Params, "plain")
	}

	if got := vcard.NewItem("PHOTO;ENCODING=B:AAAA").Encoding(); got != vcard.EncodingBase64 {
		t.Errorf("item.Encoding() = %v, want %v", got, vcard.EncodingBase64)
	}
}

func TestItem_Decode_Error(t *testing.T) {
	t.Parallel()

	it := vcard.NewItem("NOTE;ENCODING=QUOTED-PRINTABLE:=FF=FE")
	if _, err := it.Decode(); !errors.Is(err, vcard.ErrDecode) {
		t.Errorf("item.Decode() error = %v, want %v", err, vcard.ErrDecode)
	}
}

func TestParams(t *testing.T) {
	t.Parallel()

	var ps vcard.Params
	ps.Add("type", "HOME").Add("X-A", "1").Add("TYPE", "WORK")
	want := vcard.Params{
		{Name: "TYPE", Values: []string{"HOME", "WORK"}},
		{Name: "X-A", Values: []string{"1"}},
	}
	if diff := cmp.Diff(ps, want); diff != "" {
		t.Errorf("params = %+v, want %+v\ndiff (-got +want):\n%v", ps, want, diff)
	}

	if v, ok := ps.First("x-a"); !ok || v != "1" {
		t.Errorf("ps.First(\"x-a\") = (%q, %v), want (\"1\", true)", v, ok)
	}
	if !ps[0].IsList() || ps[1].IsList() {
		t.Errorf("TYPE must be a list and X-A must not")
	}

	ps.Set("X-A", "2", "3").Del("type")
	want = vcard.Params{{Name: "X-A", Values: []string{"2", "3"}}}
	if diff := cmp.Diff(ps, want); diff != "" {
		t.Errorf("params = %+v, want %+v\ndiff (-got +want):\n%v", ps, want, diff)
	}
	if !ps[0].IsList() {
		t.Errorf("multi-valued X-A must be a list")
	}
}
