// Package wardend wires the agent service together and runs it: config
// provisioning, metrics collection, privileged command execution and the
// authenticated HTTP API.
package wardend

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/absmach/supermq/pkg/jaeger"
	"github.com/absmach/supermq/pkg/prometheus"
	"github.com/absmach/supermq/pkg/server"
	httpserver "github.com/absmach/supermq/pkg/server/http"
	"github.com/absmach/warden/agent"
	"github.com/absmach/warden/agent/api"
	"github.com/absmach/warden/agent/middleware"
	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/pkg/auth"
	"github.com/absmach/warden/pkg/config"
	"github.com/absmach/warden/system"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	LogLevel   string
	InstanceID string
	ConfigPath string
	OTELURL    url.URL
	TraceRatio float64
}

// Start provisions the agent config if needed, composes the service with
// its middlewares and serves the HTTP API until ctx is cancelled. The only
// fatal path is failing to load or create the config.
func Start(ctx context.Context, cancel context.CancelFunc, cfg Config) error {
	g, ctx := errgroup.WithContext(ctx)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("failed to parse log level: %s", err.Error())
	}
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	var tp trace.TracerProvider
	switch {
	case cfg.OTELURL == (url.URL{}):
		tp = noop.NewTracerProvider()
	default:
		sdktp, err := jaeger.NewProvider(ctx, agent.SvcName, cfg.OTELURL, cfg.InstanceID, cfg.TraceRatio)
		if err != nil {
			return fmt.Errorf("failed to initialize opentelemetry: %s", err.Error())
		}
		defer func() {
			if err := sdktp.Shutdown(ctx); err != nil {
				slog.Error("error shutting down tracer provider", slog.Any("error", err))
			}
		}()
		tp = sdktp
	}
	tracer := tp.Tracer(agent.SvcName)

	agentCfg, password, err := config.LoadOrCreate(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load agent config: %s", err.Error())
	}
	if password != nil {
		printFirstBootBanner(agentCfg.Port, password)
		for i := range password {
			password[i] = 0
		}
	}

	guard := auth.NewGuard(agentCfg.PasswordHash)

	collector := monitor.NewCollector()
	collector.Start(ctx)

	svc := agent.NewService(collector, system.NewExecutor())
	svc = middleware.Logging(logger, svc)
	svc = middleware.Tracing(tracer, svc)
	counter, latency := prometheus.MakeMetrics(agent.SvcName, "api")
	svc = middleware.Metrics(counter, latency, svc)

	httpServerConfig := server.Config{Port: strconv.Itoa(agentCfg.Port)}
	hs := httpserver.NewServer(ctx, cancel, agent.SvcName, httpServerConfig, api.MakeHandler(svc, guard, logger, cfg.InstanceID), logger)

	logger.Info("starting warden agent", slog.Int("port", agentCfg.Port))

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, agent.SvcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service exited with error: %s", agent.SvcName, err))
	}

	return nil
}

// printFirstBootBanner shows the connection details exactly once, right
// after the config was generated. The password is not retrievable after
// this point.
func printFirstBootBanner(port int, password []byte) {
	line := strings.Repeat("=", 50)
	fmt.Printf("\n%s\n", line)
	fmt.Println("WARDEN AGENT PROVISIONED")
	fmt.Println(line)
	fmt.Printf("IP Address: %s\n", advertisedIP())
	fmt.Printf("Port:       %d\n", port)
	fmt.Printf("Password:   %s\n", password)
	fmt.Printf("%s\n\n", line)
}

// advertisedIP resolves the host's outbound address without sending any
// traffic: the UDP dial only selects a local source address.
func advertisedIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "127.0.0.1"
	}

	return addr.IP.String()
}
