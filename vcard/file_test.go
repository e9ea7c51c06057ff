package vcard_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghettovoice/govcard/vcard"
)

func writeFile(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "contacts.vcf")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		data    string
		charset string
		wantFN  string
	}{
		{"utf-8", "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:José\r\nEND:VCARD", "", "José"},
		{"utf-8 bom", "\ufeffBEGIN:VCARD\r\nVERSION:3.0\r\nFN:José\r\nEND:VCARD", "UTF-8", "José"},
		{"latin-1", "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jos\xe9\r\nEND:VCARD", "ISO-8859-1", "José"},
		{"windows-1252", "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:\x80uro\r\nEND:VCARD", "windows-1252", "€uro"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, c.data)
			cards, text, err := vcard.ReadFile(path, &vcard.ReadOptions{Charset: c.charset})
			if err != nil {
				t.Fatalf("vcard.ReadFile() error = %v, want nil", err)
			}
			if len(cards) != 1 {
				t.Fatalf("vcard.ReadFile() returned %d cards, want 1", len(cards))
			}
			if fn := cards[0].Find("FN"); len(fn) != 1 || fn[0].Value != c.wantFN {
				t.Errorf("FN = %v, want %q", fn, c.wantFN)
			}
			if cards[0].Source() != path {
				t.Errorf("card.Source() = %q, want %q", cards[0].Source(), path)
			}
			if text == "" || text[0] != 'B' {
				t.Errorf("vcard.ReadFile() text = %q, want decoded text without BOM", text)
			}
		})
	}
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := vcard.ReadFile(filepath.Join(t.TempDir(), "missing.vcf"), nil); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("vcard.ReadFile(missing) error = %v, want %v", err, fs.ErrNotExist)
	}

	path := writeFile(t, "BEGIN:VCARD\r\nEND:VCARD")
	if _, _, err := vcard.ReadFile(path, &vcard.ReadOptions{Charset: "x-no-such-charset"}); !errors.Is(err, vcard.ErrUnknownCharset) {
		t.Errorf("vcard.ReadFile(unknown charset) error = %v, want %v", err, vcard.ErrUnknownCharset)
	}
}
