// Package monitor gathers live host metrics: CPU, memory, disk, network
// throughput and uptime. A sub-source that is unavailable on the platform
// degrades to its zero value instead of failing the whole snapshot.
package monitor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

const (
	defCPUInterval = time.Second
	defDiskPath    = "/"

	bytesPerGB = 1024 * 1024 * 1024
)

type MemoryStats struct {
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	AvailableGB float64 `json:"available_gb"`
	Percentage  float64 `json:"percentage"`
}

type DiskStats struct {
	TotalGB    float64 `json:"total_gb"`
	UsedGB     float64 `json:"used_gb"`
	FreeGB     float64 `json:"free_gb"`
	Percentage float64 `json:"percentage"`
}

type NetworkStats struct {
	OutboundKbitsPerSec float64 `json:"outbound_kbits_per_sec"`
	TotalSentGB         float64 `json:"total_sent_gb"`
	TotalReceivedGB     float64 `json:"total_received_gb"`
}

type UptimeStats struct {
	UptimeSeconds   int64  `json:"uptime_seconds"`
	UptimeFormatted string `json:"uptime_formatted"`
	BootTime        string `json:"boot_time"`
}

// Snapshot is one aggregate reading of all host metrics. A fresh instance
// is built per request and never cached.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	CPU       float64      `json:"cpu"`
	Memory    MemoryStats  `json:"memory"`
	Disk      DiskStats    `json:"disk"`
	Network   NetworkStats `json:"network"`
	Uptime    UptimeStats  `json:"uptime"`
}

type Collector struct {
	sampler     *RateSampler
	diskPath    string
	cpuInterval time.Duration

	cpuMu      sync.RWMutex
	cpuPercent float64
}

func NewCollector() *Collector {
	return &Collector{
		sampler:     NewRateSampler(),
		diskPath:    defDiskPath,
		cpuInterval: defCPUInterval,
	}
}

// Start launches the background CPU refresher. Utilization is sampled over
// a fixed 1s window off the request path, so metrics requests are not
// delayed by the sampling interval. The loop exits when ctx is cancelled.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			// PercentWithContext blocks for the sampling interval,
			// pacing the loop on its own.
			percent, err := cpu.PercentWithContext(ctx, c.cpuInterval, false)
			if err != nil || len(percent) == 0 {
				continue
			}

			c.cpuMu.Lock()
			c.cpuPercent = round2(percent[0])
			c.cpuMu.Unlock()
		}
	}()
}

func (c *Collector) Collect(ctx context.Context) Snapshot {
	return Snapshot{
		Timestamp: time.Now(),
		CPU:       c.cpuUsage(),
		Memory:    c.memoryUsage(ctx),
		Disk:      c.diskUsage(ctx),
		Network:   c.networkUsage(ctx),
		Uptime:    c.uptime(ctx),
	}
}

func (c *Collector) cpuUsage() float64 {
	c.cpuMu.RLock()
	defer c.cpuMu.RUnlock()

	return c.cpuPercent
}

func (c *Collector) memoryUsage(ctx context.Context) MemoryStats {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStats{}
	}

	return MemoryStats{
		TotalGB:     toGB(vm.Total),
		UsedGB:      toGB(vm.Used),
		AvailableGB: toGB(vm.Available),
		Percentage:  round2(vm.UsedPercent),
	}
}

func (c *Collector) diskUsage(ctx context.Context) DiskStats {
	usage, err := disk.UsageWithContext(ctx, c.diskPath)
	if err != nil || usage.Total == 0 {
		return DiskStats{}
	}

	return DiskStats{
		TotalGB:    toGB(usage.Total),
		UsedGB:     toGB(usage.Used),
		FreeGB:     toGB(usage.Free),
		Percentage: round2(float64(usage.Used) / float64(usage.Total) * 100),
	}
}

func (c *Collector) networkUsage(ctx context.Context) NetworkStats {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		return NetworkStats{}
	}

	rate := c.sampler.Sample(counters[0].BytesSent, counters[0].BytesRecv, time.Now())

	return NetworkStats{
		OutboundKbitsPerSec: rate,
		TotalSentGB:         toGB(counters[0].BytesSent),
		TotalReceivedGB:     toGB(counters[0].BytesRecv),
	}
}

func (c *Collector) uptime(ctx context.Context) UptimeStats {
	bootTime, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return UptimeStats{}
	}

	boot := time.Unix(int64(bootTime), 0)
	seconds := int64(time.Since(boot).Seconds())

	return UptimeStats{
		UptimeSeconds:   seconds,
		UptimeFormatted: formatUptime(seconds),
		BootTime:        boot.Format(time.RFC3339),
	}
}

func formatUptime(seconds int64) string {
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60

	switch days {
	case 0:
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	case 1:
		return fmt.Sprintf("1 day, %d:%02d:%02d", hours, minutes, secs)
	default:
		return fmt.Sprintf("%d days, %d:%02d:%02d", days, hours, minutes, secs)
	}
}

func toGB(bytes uint64) float64 {
	return round2(float64(bytes) / bytesPerGB)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
