package agent_test

import (
	"context"
	"testing"
	"time"

	"github.com/absmach/warden/agent"
	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCollector struct {
	snapshot monitor.Snapshot
	calls    int
}

func (f *fakeCollector) Collect(_ context.Context) monitor.Snapshot {
	f.calls++

	return f.snapshot
}

type fakeCommander struct {
	updateResult system.Result
	rebootResult system.Result
	updateCalls  int
	rebootCalls  int
}

func (f *fakeCommander) Update(_ context.Context) system.Result {
	f.updateCalls++

	return f.updateResult
}

func (f *fakeCommander) Reboot(_ context.Context) system.Result {
	f.rebootCalls++

	return f.rebootResult
}

func TestInfo(t *testing.T) {
	t.Parallel()

	svc := agent.NewService(&fakeCollector{}, &fakeCommander{})

	info, err := svc.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, agent.SvcName, info.Service)
	assert.Equal(t, agent.Version, info.Version)
	assert.ElementsMatch(t, []string{"/health", "/info", "/metrics", "/update", "/reboot"}, info.Endpoints)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	snapshot := monitor.Snapshot{
		Timestamp: time.Now(),
		CPU:       42.5,
		Network:   monitor.NetworkStats{OutboundKbitsPerSec: 128},
	}
	collector := &fakeCollector{snapshot: snapshot}
	svc := agent.NewService(collector, &fakeCommander{})

	got, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
	assert.Equal(t, 1, collector.calls)
}

func TestUpdatePassesResultThrough(t *testing.T) {
	t.Parallel()

	cases := []struct {
		desc   string
		result system.Result
	}{
		{
			desc:   "successful update",
			result: system.Result{Success: true, UpdateOutput: "ok", UpgradeOutput: "ok"},
		},
		{
			desc:   "timed out update",
			result: system.Result{Success: false, Error: "update operation timed out"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			commander := &fakeCommander{updateResult: tc.result}
			svc := agent.NewService(&fakeCollector{}, commander)

			got, err := svc.Update(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.result, got)
			assert.Equal(t, 1, commander.updateCalls)
		})
	}
}

func TestRebootPassesResultThrough(t *testing.T) {
	t.Parallel()

	commander := &fakeCommander{rebootResult: system.Result{Success: true, Message: "reboot initiated"}}
	svc := agent.NewService(&fakeCollector{}, commander)

	got, err := svc.Reboot(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, 1, commander.rebootCalls)
}
