package agent

import (
	"context"

	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
)

type service struct {
	collector Collector
	commander Commander
}

func NewService(collector Collector, commander Commander) Service {
	return &service{
		collector: collector,
		commander: commander,
	}
}

func (svc *service) Info(_ context.Context) (Info, error) {
	return Info{
		Service:        SvcName,
		Version:        Version,
		Endpoints:      []string{"/health", "/info", "/metrics", "/update", "/reboot"},
		Authentication: "Bearer token required for protected endpoints",
	}, nil
}

func (svc *service) Metrics(ctx context.Context) (monitor.Snapshot, error) {
	return svc.collector.Collect(ctx), nil
}

func (svc *service) Update(ctx context.Context) (system.Result, error) {
	return svc.commander.Update(ctx), nil
}

func (svc *service) Reboot(ctx context.Context) (system.Result, error) {
	return svc.commander.Reboot(ctx), nil
}
