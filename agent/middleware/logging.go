package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/warden/agent"
	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
)

var _ agent.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    agent.Service
}

func Logging(logger *slog.Logger, svc agent.Service) agent.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm *loggingMiddleware) Info(ctx context.Context) (resp agent.Info, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Get service info failed", args...)

			return
		}
		lm.logger.Info("Get service info completed successfully", args...)
	}(time.Now())

	return lm.svc.Info(ctx)
}

func (lm *loggingMiddleware) Metrics(ctx context.Context) (resp monitor.Snapshot, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Collect metrics failed", args...)

			return
		}
		lm.logger.Info("Collect metrics completed successfully", args...)
	}(time.Now())

	return lm.svc.Metrics(ctx)
}

func (lm *loggingMiddleware) Update(ctx context.Context) (resp system.Result, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Bool("success", resp.Success),
		}
		if err != nil || !resp.Success {
			args = append(args, slog.String("error", resp.Error))
			lm.logger.Warn("System update failed", args...)

			return
		}
		lm.logger.Info("System update completed successfully", args...)
	}(time.Now())

	return lm.svc.Update(ctx)
}

func (lm *loggingMiddleware) Reboot(ctx context.Context) (resp system.Result, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Bool("success", resp.Success),
		}
		if err != nil || !resp.Success {
			args = append(args, slog.String("error", resp.Error))
			lm.logger.Warn("System reboot failed", args...)

			return
		}
		lm.logger.Info("System reboot initiated successfully", args...)
	}(time.Now())

	return lm.svc.Reboot(ctx)
}
