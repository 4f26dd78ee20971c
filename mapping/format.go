package mapping

import (
	"fmt"
	"io"
)

// WriteLine renders m as one conventional maps line:
//
//	00400000-00401000 r-xp 00000000 08:01 12345 /bin/true
//
// Hex fields are lowercase and padded to eight digits. The device id is
// not tracked by Mapping, so the caller supplies it; pass 0 when unknown.
// WriteLine fails only if the writer does, and that error is returned
// as-is.
func WriteLine(w io.Writer, m *Mapping, dev uint64) error {
	_, err := fmt.Fprintf(w, "%08x-%08x %s %08x %02x:%02x %d %s\n",
		m.Start, m.End, m.Perms, m.Offset,
		dev/256, dev%256, m.Inode, m.Path)

	return err
}
