package middleware

import (
	"context"
	"time"

	"github.com/absmach/warden/agent"
	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
	"github.com/go-kit/kit/metrics"
)

var _ agent.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     agent.Service
}

func Metrics(counter metrics.Counter, latency metrics.Histogram, svc agent.Service) agent.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Info(ctx context.Context) (agent.Info, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "info").Add(1)
		mm.latency.With("method", "info").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Info(ctx)
}

func (mm *metricsMiddleware) Metrics(ctx context.Context) (monitor.Snapshot, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "metrics").Add(1)
		mm.latency.With("method", "metrics").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Metrics(ctx)
}

func (mm *metricsMiddleware) Update(ctx context.Context) (system.Result, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "update").Add(1)
		mm.latency.With("method", "update").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Update(ctx)
}

func (mm *metricsMiddleware) Reboot(ctx context.Context) (system.Result, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "reboot").Add(1)
		mm.latency.With("method", "reboot").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Reboot(ctx)
}
