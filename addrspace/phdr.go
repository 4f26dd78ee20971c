package addrspace

import (
	"debug/elf"

	"github.com/tcassar-diss/procmap/mapping"
)

// alignExtent widens a loadable segment's nominal [vaddr, vaddr+filesz)
// extent to its mapping alignment — start rounded down, end rounded up,
// file offset pulled back with the start — the same rounding the loader
// applies when it actually maps the segment. An alignment of 0 or 1
// leaves the extent untouched.
func alignExtent(vaddr, filesz, offset, align uint64) (start, end, off uint64) {
	if align < 2 {
		return vaddr, vaddr + filesz, offset
	}

	startAdj := vaddr & (align - 1)
	endAdj := (-(vaddr + filesz)) & (align - 1)

	return vaddr - startAdj, vaddr + filesz + endAdj, offset - startAdj
}

// forEachSegment reports one mapping per PT_LOAD program header of f, as
// the loader maps it when the object is based at base. name labels every
// record; segment metadata carries no inode.
func forEachSegment(f *elf.File, base uint64, name string, fn VisitFunc) {
	path := []byte(name)

	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}

		start, end, off := alignExtent(base+p.Vaddr, p.Filesz, p.Off, p.Align)

		m := mapping.Mapping{
			Start: start,
			End:   end,
			Perms: mapping.Perms{
				Read:  p.Flags&elf.PF_R != 0,
				Write: p.Flags&elf.PF_W != 0,
				Exec:  p.Flags&elf.PF_X != 0,
			},
			Offset: off,
			Path:   path,
		}

		fn(&m)
	}
}
