package agent

import (
	"context"

	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
)

const (
	SvcName = "warden"
	Version = "1.0.0"
)

// Info describes the service to unauthenticated callers.
type Info struct {
	Service        string   `json:"service"`
	Version        string   `json:"version"`
	Endpoints      []string `json:"endpoints"`
	Authentication string   `json:"authentication"`
}

// Collector produces one aggregate metrics reading per call.
type Collector interface {
	Collect(ctx context.Context) monitor.Snapshot
}

// Commander runs the privileged host operations. Neither operation is
// idempotent nor safely retryable; outcomes are embedded in the Result.
type Commander interface {
	Update(ctx context.Context) system.Result
	Reboot(ctx context.Context) system.Result
}

type Service interface {
	Info(ctx context.Context) (Info, error)
	Metrics(ctx context.Context) (monitor.Snapshot, error)
	Update(ctx context.Context) (system.Result, error)
	Reboot(ctx context.Context) (system.Result, error)
}
