package middleware

import (
	"context"

	"github.com/absmach/warden/agent"
	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var _ agent.Service = (*tracing)(nil)

type tracing struct {
	tracer trace.Tracer
	svc    agent.Service
}

func Tracing(tracer trace.Tracer, svc agent.Service) agent.Service {
	return &tracing{tracer, svc}
}

func (tm *tracing) Info(ctx context.Context) (agent.Info, error) {
	ctx, span := tm.tracer.Start(ctx, "info")
	defer span.End()

	return tm.svc.Info(ctx)
}

func (tm *tracing) Metrics(ctx context.Context) (monitor.Snapshot, error) {
	ctx, span := tm.tracer.Start(ctx, "metrics")
	defer span.End()

	return tm.svc.Metrics(ctx)
}

func (tm *tracing) Update(ctx context.Context) (resp system.Result, err error) {
	ctx, span := tm.tracer.Start(ctx, "update")
	defer func() {
		span.SetAttributes(attribute.Bool("success", resp.Success))
		span.End()
	}()

	return tm.svc.Update(ctx)
}

func (tm *tracing) Reboot(ctx context.Context) (resp system.Result, err error) {
	ctx, span := tm.tracer.Start(ctx, "reboot")
	defer func() {
		span.SetAttributes(attribute.Bool("success", resp.Success))
		span.End()
	}()

	return tm.svc.Reboot(ctx)
}
