package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcassar-diss/procmap/mapping"
)

func TestPermsString(t *testing.T) {
	cases := []struct {
		name     string
		perms    mapping.Perms
		expected string
	}{
		{
			name:     "zero value is private no access",
			perms:    mapping.Perms{},
			expected: "---p",
		},
		{
			name:     "read write private keeps literal dash for exec",
			perms:    mapping.Perms{Read: true, Write: true},
			expected: "rw-p",
		},
		{
			name:     "read exec private",
			perms:    mapping.Perms{Read: true, Exec: true},
			expected: "r-xp",
		},
		{
			name:     "shared",
			perms:    mapping.Perms{Read: true, Write: true, Shared: true},
			expected: "rw-s",
		},
		{
			name:     "all flags",
			perms:    mapping.Perms{Read: true, Write: true, Exec: true, Shared: true},
			expected: "rwxs",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, c.perms.String())
		})
	}
}

func TestParsePerms(t *testing.T) {
	cases := []struct {
		name     string
		token    string
		expected mapping.Perms
	}{
		{
			name:     "full private token",
			token:    "r-xp",
			expected: mapping.Perms{Read: true, Exec: true},
		},
		{
			name:     "full shared token",
			token:    "rw-s",
			expected: mapping.Perms{Read: true, Write: true, Shared: true},
		},
		{
			name:     "three characters default to private",
			token:    "rwx",
			expected: mapping.Perms{Read: true, Write: true, Exec: true},
		},
		{
			name:     "single character",
			token:    "r",
			expected: mapping.Perms{Read: true},
		},
		{
			name:     "empty token has nothing",
			token:    "",
			expected: mapping.Perms{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := mapping.ParsePerms([]byte(c.token))
			require.Equal(t, c.expected, got)
			if len(c.token) == 4 {
				require.Equal(t, c.token, got.String(), "full tokens must round-trip")
			}
		})
	}
}

func TestContains(t *testing.T) {
	m := mapping.Mapping{Start: 0x1000, End: 0x2000}

	require.True(t, m.Contains(0x1000), "interval includes its start")
	require.True(t, m.Contains(0x1fff))
	require.False(t, m.Contains(0x2000), "interval excludes its end")
	require.False(t, m.Contains(0xfff))
}

func TestAnonymous(t *testing.T) {
	require.True(t, (&mapping.Mapping{}).Anonymous())
	require.False(t, (&mapping.Mapping{Inode: 5}).Anonymous())
	require.False(t, (&mapping.Mapping{Path: []byte("[heap]")}).Anonymous())
}
