package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	jaegercfg "github.com/uber/jaeger-client-go/config"

	"max.ks1230/accounting/internal/clients/cache"
	"max.ks1230/accounting/internal/clients/console"
	"max.ks1230/accounting/internal/config"
	"max.ks1230/accounting/internal/logger"
	"max.ks1230/accounting/internal/model/accounting"
	"max.ks1230/accounting/internal/model/records"
	"max.ks1230/accounting/internal/model/session"
	"max.ks1230/accounting/internal/model/stats"
	"max.ks1230/accounting/internal/model/storage"
)

func main() {
	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	initTracing(conf.App().ServiceName())

	// Storage must be reachable at startup; there is no retry path.
	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres:", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = db.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to ensure schema:", zap.Error(err))
	}

	sessionService := session.NewService(db)
	recordsService := records.NewService(db)
	statsService := stats.NewService(db)

	var svc *accounting.Service
	if conf.Memcached().Enabled() {
		mc, err := cache.NewMemcache(conf.Memcached())
		if err != nil {
			logger.Fatal("failed to init memcached:", zap.Error(err))
		}
		svc = accounting.NewService(sessionService, recordsService, statsService, mc)
	} else {
		svc = accounting.NewService(sessionService, recordsService, statsService, cache.NewNop())
	}

	console.New().Run(ctx, svc)
}

func initTracing(serviceName string) {
	cfg := jaegercfg.Configuration{
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
	}

	_, err := cfg.InitGlobalTracer(serviceName)
	if err != nil {
		logger.Fatal("cannot init tracing", zap.Error(err))
	}
}
