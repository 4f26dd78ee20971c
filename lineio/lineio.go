// Package lineio delivers newline-terminated lines from a byte stream
// using one caller-supplied fixed buffer. It exists for diagnostic paths
// (out-of-memory reporting, crash dumps) where growable buffering is off
// the table: memory use is bounded up front and a pathological line is a
// hard error, never a silent truncation.
package lineio

import (
	"bytes"
	"errors"
	"io"
)

// BufSize comfortably holds the longest line expected from a maps-format
// file: a platform path plus the numeric fields and separators.
const BufSize = 4096 + 1024

// ErrLineTooLong reports a line that could not fit in the buffer handed
// to ForEachLine. The scan is aborted: continuing would need unbounded
// memory.
var ErrLineTooLong = errors.New("lineio: line exceeds buffer")

// LineFunc receives one line, terminator stripped. The slice is a view
// into the scan buffer and is only valid until the callback returns.
// Returning false stops the scan early; this is not an error.
type LineFunc func(line []byte) bool

// ForEachLine reads r through buf and invokes fn once per line, in
// order. A final line with no trailing newline is still delivered. r is
// closed on every exit path.
//
// Reads that return no bytes are treated as end of stream whatever the
// accompanying error; interrupted-call retries belong to the handle
// (see File.Read), not here.
func ForEachLine(r io.ReadCloser, buf []byte, fn LineFunc) error {
	defer r.Close()

	if len(buf) < 2 {
		return ErrLineTooLong
	}

	// The last byte of buf is reserved so a missing trailing newline can
	// be synthesized without spilling past the end.
	limit := len(buf) - 1

	start, end := 0, 0
	eof := false

	for {
		if i := bytes.IndexByte(buf[start:end], '\n'); i >= 0 {
			if !fn(buf[start : start+i]) {
				return nil
			}

			start += i + 1

			continue
		}

		unread := end - start

		if eof {
			if unread == 0 {
				return nil
			}

			// Stream ended mid-line: terminate it ourselves and rescan.
			buf[end] = '\n'
			end++

			continue
		}

		if unread == limit {
			return ErrLineTooLong
		}

		copy(buf, buf[start:end])
		start, end = 0, unread

		n, _ := r.Read(buf[end:limit])
		if n <= 0 {
			eof = true
			continue
		}

		end += n
	}
}
