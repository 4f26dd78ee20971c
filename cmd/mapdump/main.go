package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	ps "github.com/mitchellh/go-ps"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tcassar-diss/procmap/addrspace"
	"github.com/tcassar-diss/procmap/mapping"
)

func main() {
	name := flag.String("name", "", "dump every process with this executable name instead of self")
	outDir := flag.String("out", ".", "directory for per-pid dumps (used with -name)")
	flag.Parse()

	prodLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to get logger: %v", err)
	}

	logger := prodLogger.Sugar()

	if *name == "" {
		if err := addrspace.Save(os.Stdout); err != nil {
			logger.Fatalw("failed to dump own mappings", "err", err)
		}

		return
	}

	procs, err := ps.Processes()
	if err != nil {
		logger.Fatalw("failed to list processes", "err", err)
	}

	var (
		group   errgroup.Group
		matched int
	)

	for _, p := range procs {
		if p.Executable() != *name {
			continue
		}

		matched++
		pid := p.Pid()

		group.Go(func() error {
			return dumpPid(logger, *outDir, pid)
		})
	}

	if matched == 0 {
		logger.Fatalw("no processes matched", "name", *name)
	}

	if err := group.Wait(); err != nil {
		logger.Fatalw("failed to dump mappings", "name", *name, "err", err)
	}

	logger.Infow("dumped address spaces", "name", *name, "count", matched)
}

func dumpPid(logger *zap.SugaredLogger, dir string, pid int) error {
	fp := filepath.Join(dir, fmt.Sprintf("%d.maps", pid))

	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", fp, err)
	}
	defer f.Close()

	var werr error

	if err := addrspace.ForEachPid(pid, func(m *mapping.Mapping) {
		if werr == nil {
			werr = mapping.WriteLine(f, m, 0)
		}
	}); err != nil {
		return fmt.Errorf("failed to read maps for pid %d: %w", pid, err)
	}

	if werr != nil {
		return fmt.Errorf("failed to write %s: %w", fp, werr)
	}

	logger.Infow("dumped address space", "pid", pid, "file", fp)

	return nil
}
