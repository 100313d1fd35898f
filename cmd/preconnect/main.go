package main

import (
	"context"
	"os"
	"strings"

	"github.com/jasonkayzk/preconnect/channel_pool/errs"
	"github.com/jasonkayzk/preconnect/config"
	"github.com/jasonkayzk/preconnect/warmup"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	godotenv.Load()
	os.Exit(run(os.Getenv("PRECONNECT_CONFIG")))
}

func run(configPath string) int {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Error("load config")
		return 1
	}
	setupLogging(cfg.Logging)
	log.Infof("starting with %s", cfg)

	ctx := context.Background()
	if timeout := cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p, err := openPool(ctx, cfg.Pool)
	if err != nil {
		log.WithError(err).Error("open pool")
		return 1
	}
	defer p.Close()

	opts := []warmup.Option{warmup.WithContext(ctx)}
	if cfg.Warmup.Rate > 0 {
		opts = append(opts, warmup.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Warmup.Rate), cfg.Warmup.Burst)))
	}

	err = warmup.Warm(p, opts...)
	switch {
	case err == nil:
	case errs.IsReleaseFailedErr(err):
		log.WithError(err).Warn("pool warmed up with release errors")
	default:
		log.WithError(err).Error("warmup")
		return 1
	}

	log.WithField("driver", cfg.Pool.Driver).Info("ready")
	return 0
}

func setupLogging(c config.LoggingConfig) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(c.Format) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
