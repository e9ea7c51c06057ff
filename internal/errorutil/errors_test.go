package errorutil_test

import (
	"errors"
	"io"
	"testing"

	"github.com/ghettovoice/govcard/internal/errorutil"
)

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	const sentinel errorutil.Error = "boom"

	cases := []struct {
		name    string
		args    []any
		wantMsg string
	}{
		{"no args", nil, "boom"},
		{"string", []any{"details"}, "boom: details"},
		{"format", []any{"line %d", 3}, "boom: line 3"},
		{"error", []any{io.EOF}, "boom: EOF"},
		{"already wrapped", []any{errorutil.NewWrapperError(sentinel, "x")}, "boom: x"},
		{"unsupported arg", []any{42}, "boom"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(sentinel, c.args...)
			if !errors.Is(err, sentinel) {
				t.Errorf("errors.Is(err, sentinel) = false, want true")
			}
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("err.Error() = %q, want %q", got, c.wantMsg)
			}
		})
	}
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	if err := errorutil.JoinPrefix("config", nil, nil); err != nil {
		t.Fatalf("JoinPrefix(nil, nil) = %v, want nil", err)
	}

	err := errorutil.JoinPrefix("config:", io.EOF)
	if got, want := err.Error(), "config: EOF"; got != want {
		t.Errorf("err.Error() = %q, want %q", got, want)
	}

	err = errorutil.JoinPrefix("invalid config", io.EOF, nil, io.ErrUnexpectedEOF)
	want := "invalid config\n  - EOF\n  - unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("err.Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("errors.Is(err, io.ErrUnexpectedEOF) = false, want true")
	}
}
