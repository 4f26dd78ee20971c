//go:build unix

package lineio

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is a minimal read-only handle over a raw file descriptor. Open and
// Read retry on EINTR, so a scan survives interrupted system calls; Go's
// os.File hides the descriptor behind the runtime poller, which procfs
// pseudo-files don't need and early-init diagnostic paths can't afford.
type File struct {
	fd   int
	path string
}

// Open opens path read-only.
func Open(path string) (*File, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return nil, &os.PathError{Op: "open", Path: path, Err: err}
		}

		return &File{fd: fd, path: path}, nil
	}
}

func (f *File) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(f.fd, p)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return 0, &os.PathError{Op: "read", Path: f.path, Err: err}
		}

		if n <= 0 {
			return 0, io.EOF
		}

		return n, nil
	}
}

func (f *File) Close() error {
	return unix.Close(f.fd)
}
