package util_test

import (
	"testing"

	"github.com/ghettovoice/govcard/internal/util"
)

func TestTrimPrefixFold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s, prefix, want string
	}{
		{"geo:37.38,-122.08", "geo:", "37.38,-122.08"},
		{"GEO:1,2", "geo:", "1,2"},
		{"ge", "geo:", "ge"},
		{"tel:123", "geo:", "tel:123"},
		{"", "geo:", ""},
	}
	for _, c := range cases {
		if got := util.TrimPrefixFold(c.s, c.prefix); got != c.want {
			t.Errorf("TrimPrefixFold(%q, %q) = %q, want %q", c.s, c.prefix, got, c.want)
		}
	}
}

func TestEllipsis(t *testing.T) {
	t.Parallel()

	if got := util.Ellipsis("Привет мир", 6); got != "Привет..." {
		t.Errorf("Ellipsis() = %q, want %q", got, "Привет...")
	}
	if got := util.Ellipsis("short", 10); got != "short" {
		t.Errorf("Ellipsis() = %q, want %q", got, "short")
	}
}
