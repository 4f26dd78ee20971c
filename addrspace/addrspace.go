// Package addrspace enumerates the virtual-memory regions mapped into the
// calling process, normalising radically different platform sources
// (procfs text, loader segment metadata, binary record streams, module
// snapshots) into the one canonical mapping.Mapping shape.
//
// Enumeration is push-style and one-shot: a caller supplies a callback,
// the platform's strategy runs to completion on the calling thread, and
// no state survives the call. Every *Mapping handed to the callback —
// its Path view in particular — is valid only until the callback
// returns. Copy anything that must outlive it.
package addrspace

import (
	"errors"
	"io"

	"github.com/tcassar-diss/procmap/lineio"
	"github.com/tcassar-diss/procmap/mapping"
)

// ErrUnsupported reports that the host platform has no enumeration
// mechanism compiled in.
var ErrUnsupported = errors.New("addrspace: not supported on this platform")

// VisitFunc receives one mapping per region. The pointee and its Path
// view are reused storage; they are valid only until the callback
// returns.
type VisitFunc func(m *mapping.Mapping)

// ForEach reports every region currently mapped into the calling
// process, in the order the platform source produces them: ascending
// address for procfs sources, load order for module walkers.
//
// ForEach fails only when the platform source cannot be opened or read
// at all. Individual malformed entries are skipped silently — a
// best-effort snapshot beats an all-or-nothing one in the diagnostic
// contexts this runs in.
func ForEach(fn VisitFunc) error {
	return forEachSelf(fn)
}

// ForEachText enumerates mappings from any maps-format byte stream, such
// as a dump previously written with Save. r is closed before returning.
func ForEachText(r io.ReadCloser, fn VisitFunc) error {
	var buf [lineio.BufSize]byte

	return scanMaps(r, buf[:], fn)
}

func scanMaps(r io.ReadCloser, buf []byte, fn VisitFunc) error {
	return lineio.ForEachLine(r, buf, func(line []byte) bool {
		m, ok := parseMapsLine(line)
		if !ok {
			return true // skip the line, keep scanning
		}

		fn(&m)

		return true
	})
}

// Save writes the full enumeration to w in the canonical text form, one
// line per region with a zero device id. It is the plain-text snapshot
// used by crash reporters and heap dumps.
func Save(w io.Writer) error {
	var werr error

	if err := ForEach(func(m *mapping.Mapping) {
		if werr == nil {
			werr = mapping.WriteLine(w, m, 0)
		}
	}); err != nil {
		return err
	}

	return werr
}
