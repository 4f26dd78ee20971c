package mapping_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcassar-diss/procmap/mapping"
)

func TestWriteLine(t *testing.T) {
	cases := []struct {
		name     string
		m        mapping.Mapping
		dev      uint64
		expected string
	}{
		{
			name: "file backed",
			m: mapping.Mapping{
				Start: 0x400000,
				End:   0x401000,
				Perms: mapping.Perms{Read: true, Exec: true},
				Inode: 12345,
				Path:  []byte("/bin/true"),
			},
			dev:      8*256 + 1,
			expected: "00400000-00401000 r-xp 00000000 08:01 12345 /bin/true\n",
		},
		{
			name: "rw-p renders the exec dash literally",
			m: mapping.Mapping{
				Start:  0x7ffff7e17000,
				End:    0x7ffff7e18000,
				Perms:  mapping.Perms{Read: true, Write: true},
				Offset: 0x1000,
			},
			expected: "7ffff7e17000-7ffff7e18000 rw-p 00001000 00:00 0 \n",
		},
		{
			name: "wide addresses are not truncated",
			m: mapping.Mapping{
				Start: 0xffffffffff600000,
				End:   0xffffffffff601000,
				Perms: mapping.Perms{Exec: true},
				Path:  []byte("[vsyscall]"),
			},
			expected: "ffffffffff600000-ffffffffff601000 --xp 00000000 00:00 0 [vsyscall]\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer

			require.NoError(t, mapping.WriteLine(&out, &c.m, c.dev))
			require.Equal(t, c.expected, out.String())
		})
	}
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteLinePropagatesWriterError(t *testing.T) {
	boom := errors.New("sink full")

	err := mapping.WriteLine(failWriter{err: boom}, &mapping.Mapping{}, 0)
	require.ErrorIs(t, err, boom)
}
