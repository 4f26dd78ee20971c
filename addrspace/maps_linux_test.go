//go:build linux

package addrspace_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcassar-diss/procmap/addrspace"
	"github.com/tcassar-diss/procmap/mapping"
)

func TestForEachSelf(t *testing.T) {
	var (
		count int
		last  uint64
	)

	err := addrspace.ForEach(func(m *mapping.Mapping) {
		require.LessOrEqual(t, m.Start, m.End)
		require.GreaterOrEqual(t, m.Start, last, "text source reports ascending addresses")

		last = m.Start
		count++
	})

	require.NoError(t, err)
	require.NotZero(t, count, "a live process always has mappings")
}

func TestForEachPidSelf(t *testing.T) {
	var self, byPid int

	require.NoError(t, addrspace.ForEach(func(*mapping.Mapping) { self++ }))
	require.NoError(t, addrspace.ForEachPid(os.Getpid(), func(*mapping.Mapping) { byPid++ }))

	// Enumerating can itself fault in a page or two, so allow slack.
	require.InDelta(t, self, byPid, 4)
}

func TestSaveRoundTrips(t *testing.T) {
	var dump bytes.Buffer

	require.NoError(t, addrspace.Save(&dump))

	var reparsed int

	err := addrspace.ForEachText(readCloser{&dump}, func(*mapping.Mapping) { reparsed++ })
	require.NoError(t, err)
	require.NotZero(t, reparsed, "a saved dump must parse back")
}

type readCloser struct{ *bytes.Buffer }

func (readCloser) Close() error { return nil }
