//go:build freebsd

package addrspace

import (
	"debug/elf"
	"fmt"
	"os"
)

// The dynamic linker's in-memory segment list isn't reachable from pure
// Go, so the structural walk reads the same program headers back from the
// executable image. os.Executable doubles as the invocation-name lookup
// that names the otherwise unnamed main object.
//
// A position-independent executable's load base isn't observable here, so
// its segments are reported at their nominal (unslid) addresses.
func forEachSelf(fn VisitFunc) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	f, err := elf.Open(exe)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", exe, err)
	}
	defer f.Close()

	forEachSegment(f, 0, exe, fn)

	return nil
}
