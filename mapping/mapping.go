// Package mapping defines the canonical representation of one contiguous
// virtual-memory region and its conventional /proc/pid/maps text rendering.
//
// Every enumeration strategy in the addrspace package, whatever its source
// (procfs text, loader metadata, binary records, module snapshots),
// normalises into this one shape.
package mapping

// Perms holds the four independent access flags of a region. The zero
// value renders as "---p": no access, private — privacy defaults to
// private unless a mapping is explicitly marked shared.
type Perms struct {
	Read   bool
	Write  bool
	Exec   bool
	Shared bool
}

// String renders the fixed-order four character token, e.g. "r-xp".
func (p Perms) String() string {
	b := [4]byte{'-', '-', '-', 'p'}
	if p.Read {
		b[0] = 'r'
	}
	if p.Write {
		b[1] = 'w'
	}
	if p.Exec {
		b[2] = 'x'
	}
	if p.Shared {
		b[3] = 's'
	}
	return string(b[:])
}

// ParsePerms converts a permission token as found in a maps line.
// Tokens shorter than four characters are tolerated: missing positions
// are treated as absent, not guessed, and privacy defaults to private.
func ParsePerms(tok []byte) Perms {
	var p Perms

	if len(tok) > 0 {
		p.Read = tok[0] == 'r'
	}
	if len(tok) > 1 {
		p.Write = tok[1] == 'w'
	}
	if len(tok) > 2 {
		p.Exec = tok[2] == 'x'
	}
	if len(tok) > 3 {
		p.Shared = tok[3] == 's'
	}

	return p
}

// Mapping is one region of the process's virtual address space, the
// half-open interval [Start, End).
//
// Path is a borrowed view into storage owned by the enumeration that
// produced the record (a reused line buffer, or loader metadata). It is
// valid ONLY for the duration of the visit callback that delivered the
// Mapping; the backing bytes may be overwritten as soon as the callback
// returns. Callers that need the name afterwards must copy it, e.g.
// string(m.Path).
type Mapping struct {
	Start  uint64
	End    uint64
	Perms  Perms
	Offset uint64
	Inode  uint64
	Path   []byte
}

// Anonymous reports whether the region has no backing file.
func (m *Mapping) Anonymous() bool {
	return m.Inode == 0 && len(m.Path) == 0
}

// Contains reports whether addr falls inside [Start, End).
func (m *Mapping) Contains(addr uint64) bool {
	return addr >= m.Start && addr < m.End
}
