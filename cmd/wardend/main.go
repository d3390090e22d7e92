package main

import (
	"context"
	"log"
	"net/url"
	"os"

	"github.com/absmach/warden/pkg/config"
	"github.com/absmach/warden/wardend"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const pathEnv = ".env"

type envConfig struct {
	LogLevel   string  `env:"WARDEN_LOG_LEVEL"   envDefault:"info"`
	InstanceID string  `env:"WARDEN_INSTANCE_ID"`
	ConfigPath string  `env:"WARDEN_CONFIG_PATH" envDefault:"/etc/warden/config.json"`
	OTELURL    url.URL `env:"WARDEN_OTEL_URL"`
	TraceRatio float64 `env:"WARDEN_TRACE_RATIO" envDefault:"0"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := os.Stat(pathEnv); err == nil {
		_ = godotenv.Load(pathEnv)
	}

	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load configuration : %s", err.Error())
	}

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.DefPath
	}

	if err := wardend.Start(ctx, cancel, wardend.Config{
		LogLevel:   cfg.LogLevel,
		InstanceID: cfg.InstanceID,
		ConfigPath: cfg.ConfigPath,
		OTELURL:    cfg.OTELURL,
		TraceRatio: cfg.TraceRatio,
	}); err != nil {
		log.Fatalf("wardend exited with error: %s", err.Error())
	}
}
