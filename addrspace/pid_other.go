//go:build !linux && !netbsd

package addrspace

// ForEachPid needs a per-pid maps file, which only procfs platforms have.
func ForEachPid(pid int, fn VisitFunc) error {
	return ErrUnsupported
}
