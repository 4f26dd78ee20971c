//go:build darwin

package addrspace

import (
	"bytes"
	"debug/macho"
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/tcassar-diss/procmap/mapping"
)

const (
	sysProcInfo           = 336 // SYS_PROC_INFO
	procInfoCallPidInfo   = 2   // PROC_INFO_CALL_PIDINFO
	procPidRegionInfo     = 7   // PROC_PIDREGIONINFO
	procPidRegionPathInfo = 13  // PROC_PIDREGIONPATHINFO2

	maxRegionScan = 100000
)

// procRegionInfo matches XNU's proc_regioninfo struct (96 bytes).
type procRegionInfo struct {
	Protection            uint32
	MaxProtection         uint32
	Inheritance           uint32
	Flags                 uint32
	Offset                uint64
	Behavior              uint32
	UserWiredCount        uint32
	UserTag               uint32
	PagesResident         uint32
	PagesSharedNowPrivate uint32
	PagesSwappedOut       uint32
	PagesDirtied          uint32
	RefCount              uint32
	ShadowDepth           uint32
	ShareMode             uint32
	PrivatePagesResident  uint32
	SharedPagesResident   uint32
	ObjID                 uint32
	Depth                 uint32
	Address               uint64
	Size                  uint64
}

func procPidInfo(pid, flavor int, arg uint64, buf unsafe.Pointer, size int) (int, error) {
	r1, _, errno := syscall.Syscall6(
		sysProcInfo,
		procInfoCallPidInfo,
		uintptr(pid),
		uintptr(flavor),
		uintptr(arg),
		uintptr(buf),
		uintptr(size),
	)
	if errno != 0 {
		return int(r1), errno
	}

	return int(r1), nil
}

type loadedImage struct {
	base uint64
	path string
}

// loadedImages snapshots the file-backed images mapped into pid, lowest
// base first, by walking the kernel's region list. The snapshot is taken
// once per enumeration; unlike dyld's live image list it cannot change
// under the walk.
func loadedImages(pid int) ([]loadedImage, error) {
	var images []loadedImage

	seen := make(map[string]bool)
	addr := uint64(1) // region lookup returns EINVAL for 0

	for i := 0; i < maxRegionScan; i++ {
		var ri procRegionInfo

		n, err := procPidInfo(pid, procPidRegionInfo, addr, unsafe.Pointer(&ri), int(unsafe.Sizeof(ri)))
		if err != nil || n == 0 || ri.Size == 0 {
			break
		}

		var pathBuf [1024]byte
		if pn, _ := procPidInfo(pid, procPidRegionPathInfo, ri.Address, unsafe.Pointer(&pathBuf[0]), len(pathBuf)); pn > 0 {
			if end := bytes.IndexByte(pathBuf[:], 0); end > 0 && pathBuf[0] == '/' {
				path := string(pathBuf[:end])
				if !seen[path] {
					seen[path] = true
					images = append(images, loadedImage{base: ri.Address, path: path})
				}
			}
		}

		addr = ri.Address + ri.Size
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("failed to walk regions of pid %d", pid)
	}

	return images, nil
}

// forEachSelf walks each loaded image from the top of the load order
// down, and within each image its segment load commands from the top
// down. Protection bits aren't exposed at this layer, so every segment
// carries the fixed best-effort r-xp token.
func forEachSelf(fn VisitFunc) error {
	images, err := loadedImages(os.Getpid())
	if err != nil {
		return fmt.Errorf("failed to snapshot loaded images: %w", err)
	}

	for i := len(images) - 1; i >= 0; i-- {
		img := images[i]

		f, err := macho.Open(img.path)
		if err != nil {
			continue // image unlinked or unreadable since the snapshot
		}

		slide := imageSlide(f, img.base)
		path := []byte(img.path)

		for j := len(f.Loads) - 1; j >= 0; j-- {
			seg, ok := f.Loads[j].(*macho.Segment)
			if !ok {
				continue
			}

			m := mapping.Mapping{
				Start:  seg.Addr + slide,
				End:    seg.Addr + seg.Memsz + slide,
				Perms:  mapping.Perms{Read: true, Exec: true},
				Offset: seg.Offset,
				Path:   path,
			}

			fn(&m)
		}

		f.Close()
	}

	return nil
}

// imageSlide is the load-time relocation applied to an image: the
// difference between where __TEXT landed and where it was linked.
func imageSlide(f *macho.File, base uint64) uint64 {
	if seg := f.Segment("__TEXT"); seg != nil {
		return base - seg.Addr
	}

	return 0
}
