//go:build !linux && !netbsd && !freebsd && !solaris && !darwin && !windows

package addrspace

func forEachSelf(fn VisitFunc) error {
	return ErrUnsupported
}
