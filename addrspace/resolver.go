package addrspace

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tcassar-diss/procmap/mapping"
)

// Region is an owning copy of one enumerated mapping, safe to retain after
// the enumeration that produced it has returned.
type Region struct {
	Start  uint64
	End    uint64
	Perms  mapping.Perms
	Offset uint64
	Inode  uint64
	Path   string
}

func (r *Region) contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

// Resolver provides a thread safe way to correlate raw addresses with the
// objects mapped into the process's address space.
type Resolver struct {
	logger   *zap.SugaredLogger
	mu       sync.Mutex
	regions  []Region
	scanned  bool
	snapshot func(VisitFunc) error
}

// NewResolver is configured to enumerate the calling process.
func NewResolver(logger *zap.SugaredLogger) *Resolver {
	return &Resolver{logger: logger, snapshot: ForEach}
}

// NewTestResolver is configured with a Nop logger and a snapshot source.
// snapshot specifies where mappings come from.
func NewTestResolver(snapshot func(VisitFunc) error) *Resolver {
	return &Resolver{logger: zap.NewNop().Sugar(), snapshot: snapshot}
}

// Regions returns the current snapshot of the address space.
//
// Regions will cache: to force a new enumeration, use dirty=true.
func (r *Resolver) Regions(dirty bool) ([]Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.scanned && !dirty {
		return r.regions, nil
	}

	r.logger.Infow("enumerating address space")

	var regions []Region

	if err := r.snapshot(func(m *mapping.Mapping) {
		regions = append(regions, Region{
			Start:  m.Start,
			End:    m.End,
			Perms:  m.Perms,
			Offset: m.Offset,
			Inode:  m.Inode,
			// The mapping's Path view dies with the callback; keep a copy.
			Path: string(m.Path),
		})
	}); err != nil {
		return nil, fmt.Errorf("failed to enumerate address space: %w", err)
	}

	if len(regions) == 0 {
		r.logger.Warnw("no mappings reported")
	}

	r.regions = regions
	r.scanned = true

	return regions, nil
}

// AssignPC will assign a PC value to a mapped object's path.
//
// AssignPC relies on Regions: pass dirty=true to force a new enumeration.
func (r *Resolver) AssignPC(pc uint64, dirty bool) (string, error) {
	regions, err := r.Regions(dirty)
	if err != nil {
		return "", fmt.Errorf("failed to load memory map: %w", err)
	}

	for i := range regions {
		if !regions[i].contains(pc) {
			continue
		}

		if regions[i].Path == "" {
			break
		}

		return regions[i].Path, nil
	}

	// if no named mapping contains pc, the address must live in
	// anonymously mapped space
	return "anonymous", nil
}
