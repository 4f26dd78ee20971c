package addrspace

import (
	"bytes"

	"github.com/tcassar-diss/procmap/mapping"
)

// parseUint converts all of b in the given base (10 or 16, lowercase
// digits only). The whole slice must be consumed; a stray character
// anywhere fails the field.
func parseUint(b []byte, base uint64) (uint64, bool) {
	if len(b) == 0 {
		return 0, false
	}

	var v uint64

	for _, c := range b {
		var d uint64

		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		default:
			return 0, false
		}

		if d >= base {
			return 0, false
		}

		v = v*base + d
	}

	return v, true
}

// nextUint parses an unsigned integer from the front of b, requiring the
// digits to run exactly up to the first occurrence of sep, and returns
// the remainder just past it. When sep is a space, any further run of
// spaces is skipped too, mirroring sscanf's separator handling.
func nextUint(b []byte, base uint64, sep byte) (uint64, []byte, bool) {
	i := bytes.IndexByte(b, sep)
	if i < 0 {
		return 0, nil, false
	}

	v, ok := parseUint(b[:i], base)
	if !ok {
		return 0, nil, false
	}

	rest := b[i+1:]
	if sep == ' ' {
		for len(rest) > 0 && rest[0] == ' ' {
			rest = rest[1:]
		}
	}

	return v, rest, true
}

// parseMapsLine extracts one line in the conventional maps format:
//
//	start-end perms offset major:minor inode [whitespace+ filename]
//
// The returned Mapping's Path aliases line; it is only as durable as the
// buffer the line lives in. Any missing, truncated, or non-numeric field
// fails the whole line — the maps file can change under the reader, so
// callers skip bad lines rather than aborting the scan.
func parseMapsLine(line []byte) (mapping.Mapping, bool) {
	var (
		m  mapping.Mapping
		ok bool
	)

	if m.Start, line, ok = nextUint(line, 16, '-'); !ok {
		return m, false
	}

	if m.End, line, ok = nextUint(line, 16, ' '); !ok {
		return m, false
	}

	// The permission token is consumed by value; the bytes it came from
	// belong to a buffer that will be reused.
	i := bytes.IndexByte(line, ' ')
	if i < 1 || i > 4 {
		return m, false
	}

	m.Perms = mapping.ParsePerms(line[:i])
	line = line[i+1:]

	if m.Offset, line, ok = nextUint(line, 16, ' '); !ok {
		return m, false
	}

	// Device major:minor is validated then dropped; the canonical record
	// doesn't carry it.
	if _, line, ok = nextUint(line, 16, ':'); !ok {
		return m, false
	}

	if _, line, ok = nextUint(line, 16, ' '); !ok {
		return m, false
	}

	// The inode may be the last field on the line.
	j := bytes.IndexByte(line, ' ')
	if j < 0 {
		m.Inode, ok = parseUint(line, 10)
		return m, ok
	}

	if m.Inode, ok = parseUint(line[:j], 10); !ok {
		return m, false
	}

	line = line[j+1:]
	for len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		line = line[1:]
	}

	m.Path = line

	return m, true
}
