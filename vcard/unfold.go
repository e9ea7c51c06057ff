package vcard

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"strings"

	"braces.dev/errtrace"
)

// maxLineSize limits a physical line read from a stream.
const maxLineSize = 16 << 20

// unfold yields logical lines read from r.
//
// Physical lines may end with CRLF, LF or CR. A leading '=' is turned into a
// space, so legacy quoted-printable continuations join the previous line.
// A line starting with a space or a tab continues the previous logical line
// without its first character. Empty lines are skipped and "item<N>." group
// prefixes are stripped.
func unfold(r io.Reader, maxSize int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 4096), maxSize)
		sc.Split(scanPhysicalLines)

		var (
			cur     []byte
			pending bool
		)
		flush := func() bool {
			if !pending {
				return true
			}
			pending = false
			return yield(stripGroup(string(cur)), nil)
		}

		for sc.Scan() {
			b := sc.Bytes()
			switch {
			case len(b) == 0:
				continue
			case b[0] == ' ' || b[0] == '\t' || b[0] == '=':
				if !pending {
					cur, pending = cur[:0], true
				}
				cur = append(cur, b[1:]...)
			default:
				if !flush() {
					return
				}
				cur, pending = append(cur[:0], b...), true
			}
		}
		if !flush() {
			return
		}
		if err := sc.Err(); err != nil {
			yield("", errtrace.Wrap(err))
		}
	}
}

// scanPhysicalLines is a [bufio.SplitFunc] that accepts CRLF, LF and CR line breaks.
func scanPhysicalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// need one more byte to tell CR from CRLF
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// stripGroup removes a leading "item<digits>." group prefix.
func stripGroup(line string) string {
	const prefix = "item"
	if !strings.HasPrefix(line, prefix) {
		return line
	}
	i := len(prefix)
	for i < len(line) && '0' <= line[i] && line[i] <= '9' {
		i++
	}
	if i > len(prefix) && i < len(line) && line[i] == '.' {
		return line[i+1:]
	}
	return line
}
