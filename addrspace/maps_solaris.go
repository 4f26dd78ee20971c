//go:build solaris

package addrspace

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/tcassar-diss/procmap/lineio"
	"github.com/tcassar-diss/procmap/mapping"
)

// prMap mirrors the fixed-size prmap_t records that /proc/self/map serves
// to 64-bit processes.
type prMap struct {
	Vaddr    uint64
	Size     uint64
	Mapname  [64]byte
	Offset   int64
	MFlags   int32
	Pagesize int32
	Shmid    int32
	_        int32
}

// Indexed by the low three bits of pr_mflags: MA_READ=4, MA_WRITE=2,
// MA_EXEC=1.
var prPerms = [8]mapping.Perms{
	{},
	{Exec: true},
	{Write: true},
	{Write: true, Exec: true},
	{Read: true},
	{Read: true, Exec: true},
	{Read: true, Write: true},
	{Read: true, Write: true, Exec: true},
}

func forEachSelf(fn VisitFunc) error {
	f, err := lineio.Open("/proc/self/map")
	if err != nil {
		return fmt.Errorf("failed to open /proc/self/map: %w", err)
	}
	defer f.Close()

	for {
		var rec prMap
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			// End of stream; a short trailing record counts as one too.
			return nil
		}

		m := mapping.Mapping{
			Start:  rec.Vaddr,
			End:    rec.Vaddr + rec.Size,
			Perms:  prPerms[rec.MFlags&7],
			Offset: uint64(rec.Offset),
		}

		// Named segments are symlinks under /proc/self/path; a failed
		// resolve leaves the record anonymous-looking rather than failing
		// the scan.
		if name := cstring(rec.Mapname[:]); name != "" {
			if real, err := os.Readlink("/proc/self/path/" + name); err == nil {
				m.Path = []byte(real)
			}
		}

		fn(&m)
	}
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}
