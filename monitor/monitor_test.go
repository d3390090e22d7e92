package monitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUptime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		desc     string
		seconds  int64
		expected string
	}{
		{desc: "seconds only", seconds: 42, expected: "0:00:42"},
		{desc: "under a day", seconds: 4*3600 + 5*60 + 6, expected: "4:05:06"},
		{desc: "one day", seconds: 86400 + 2*3600 + 3*60 + 4, expected: "1 day, 2:03:04"},
		{desc: "several days", seconds: 3*86400 + 61, expected: "3 days, 0:01:01"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, formatUptime(tc.seconds))
		})
	}
}

func TestToGB(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, toGB(1024*1024*1024), 0.001)
	assert.InDelta(t, 0.5, toGB(512*1024*1024), 0.001)
	assert.Zero(t, toGB(0))
}

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12.35, round2(12.345))
	assert.Equal(t, 12.34, round2(12.344))
	assert.Equal(t, 0.0, round2(0))
}

func TestCollectNeverFails(t *testing.T) {
	t.Parallel()

	c := NewCollector()

	snapshot := c.Collect(context.Background())
	require.False(t, snapshot.Timestamp.IsZero())

	// Sub-metrics degrade to zero values at worst; none may be negative.
	assert.GreaterOrEqual(t, snapshot.CPU, 0.0)
	assert.GreaterOrEqual(t, snapshot.Memory.TotalGB, 0.0)
	assert.GreaterOrEqual(t, snapshot.Disk.TotalGB, 0.0)
	assert.GreaterOrEqual(t, snapshot.Network.OutboundKbitsPerSec, 0.0)
	assert.GreaterOrEqual(t, snapshot.Uptime.UptimeSeconds, int64(0))
}

func TestCollectFreshSnapshotPerCall(t *testing.T) {
	t.Parallel()

	c := NewCollector()

	first := c.Collect(context.Background())
	second := c.Collect(context.Background())
	assert.False(t, second.Timestamp.Before(first.Timestamp))
}

func TestCollectDegradesMissingDiskMount(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.diskPath = "/definitely/not/a/mount"

	snapshot := c.Collect(context.Background())
	assert.Equal(t, DiskStats{}, snapshot.Disk)
	assert.GreaterOrEqual(t, snapshot.Memory.TotalGB, 0.0)
}
