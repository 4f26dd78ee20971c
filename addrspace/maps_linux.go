//go:build linux || netbsd

package addrspace

import (
	"fmt"

	"github.com/tcassar-diss/procmap/lineio"
)

func forEachSelf(fn VisitFunc) error {
	return forEachMaps("/proc/self/maps", fn)
}

// ForEachPid enumerates the mappings of another process. The kernel
// applies its usual ptrace access rules to foreign maps files, so this
// can fail with EACCES where enumerating self would not.
func ForEachPid(pid int, fn VisitFunc) error {
	return forEachMaps(fmt.Sprintf("/proc/%d/maps", pid), fn)
}

func forEachMaps(path string, fn VisitFunc) error {
	f, err := lineio.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	// One stack buffer per scan; the maps file's length isn't knowable in
	// advance, and this path must not allocate.
	var buf [lineio.BufSize]byte

	return scanMaps(f, buf[:], fn)
}
