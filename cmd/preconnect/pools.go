package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jasonkayzk/preconnect/adapter/netpool"
	"github.com/jasonkayzk/preconnect/adapter/pgpool"
	"github.com/jasonkayzk/preconnect/adapter/redispool"
	"github.com/jasonkayzk/preconnect/adapter/sqlpool"
	"github.com/jasonkayzk/preconnect/config"
	"github.com/jasonkayzk/preconnect/warmup"
)

const tcpDialTimeout = 5 * time.Second

type pool interface {
	warmup.Pool
	Close() error
}

// openPool is swapped in tests.
var openPool = openConfiguredPool

// openConfiguredPool builds the pool named by the configured driver. ctx bounds
// every acquisition the warmup makes on it.
func openConfiguredPool(ctx context.Context, c config.PoolConfig) (pool, error) {
	switch c.Driver {
	case "sqlite3", "mysql":
		return sqlpool.Open(ctx, c.Driver, c.DSN, c.Size)
	case "postgres":
		return pgpool.Open(ctx, c.DSN, int32(c.Size))
	case "redis":
		return redispool.Open(ctx, c.DSN, c.Size)
	case "tcp":
		return netpool.Dial(ctx, c.DSN, c.Size, tcpDialTimeout)
	}
	return nil, fmt.Errorf("unknown pool driver: %s", c.Driver)
}
