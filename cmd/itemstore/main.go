package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ItemStore/internal/items"
	"ItemStore/pkg/kit"
)

func main() {
	service := "itemstore"
	log := kit.NewLogger(service, getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "5000")
	writeLimit := getenvInt(log, "WRITE_LIMIT_PER_MIN", 0)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &items.Server{
		Store:        items.NewSeededStore(),
		Log:          log,
		WriteLimiter: kit.NewIPRateLimiter(writeLimit, time.Minute),
	}

	h := items.NewHandler(s, items.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: getenv("METRICS_ENABLED", "false") == "true",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(context.Background(), ":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(log *zap.Logger, k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("ignoring invalid integer env", zap.String("key", k), zap.String("value", v))
		return def
	}
	return n
}
