//go:build windows

package addrspace

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/tcassar-diss/procmap/mapping"
)

// forEachSelf reports each module in a point-in-time Toolhelp snapshot as
// one whole-module region. The snapshot doesn't expose page protections,
// so records carry the fixed r-xp token.
func forEachSelf(fn VisitFunc) error {
	snap, err := windows.CreateToolhelp32Snapshot(
		windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32,
		uint32(os.Getpid()),
	)
	if err != nil {
		return fmt.Errorf("failed to snapshot modules: %w", err)
	}
	defer windows.CloseHandle(snap)

	var me windows.ModuleEntry32
	me.Size = uint32(unsafe.Sizeof(me))

	for err = windows.Module32First(snap, &me); err == nil; err = windows.Module32Next(snap, &me) {
		base := uint64(me.ModBaseAddr)

		m := mapping.Mapping{
			Start: base,
			End:   base + uint64(me.ModBaseSize),
			Perms: mapping.Perms{Read: true, Exec: true},
			Path:  []byte(windows.UTF16ToString(me.ExePath[:])),
		}

		fn(&m)
	}

	if err != windows.ERROR_NO_MORE_FILES {
		return fmt.Errorf("failed to walk module snapshot: %w", err)
	}

	return nil
}
