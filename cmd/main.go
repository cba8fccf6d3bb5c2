// Package main is the entry point for mycomparer. It loads configuration (env + YAML), builds the engine
// adapters over one shared http.Client, the discovery service, the metrics recorder (exported to a
// prometheus registry), the client cache, the facet loader and the Comparator session, and serves the
// HTTP API with echo. The transport warm-up runs in the background alongside discovery and the first
// Apply; the optional gRPC health server reports SERVING once the first discovery pass settled.
// On SIGINT/SIGTERM both servers shut down gracefully and every cached client is closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"mycomparer/adapters"
	"mycomparer/domain"
	"mycomparer/handlers"
	"mycomparer/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	cfg, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "configuration loaded",
		"service_port_http", cfg.HTTPPort,
		"service_port_grpc", cfg.GRPCPort,
		"instances", len(cfg.Registry.Instances),
		"slots", len(cfg.Registry.Slots),
		"default_region", cfg.Defaults.Region,
	)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	adapterSet := adapters.NewSet(httpClient)
	clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := service.NewMetricsRecorder(clock, reg)
	if err != nil {
		level.Error(logger).Log("msg", "failed to register metrics", "err", err)
		os.Exit(1)
	}

	discovery := service.NewDiscoveryService(cfg.Registry, adapterSet, clock, cfg.DiscoveryTimeout, logger)
	cache := service.NewClientCache(adapterSet, recorder, clock, cfg.QueryRate, logger)
	facets := service.NewFacetFallback(adapterSet, logger)
	comparator := service.NewComparator(cfg.Registry, discovery, cache, facets, recorder, cfg.Defaults, logger)
	defer func() {
		if err := comparator.Close(); err != nil {
			level.Warn(logger).Log("msg", "closing clients", "err", err)
		}
	}()
	warmer := service.NewWarmer(httpClient, adapterSet, clock, cfg.WarmupTimeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e, err := handlers.NewRouter(ctx, handlers.NewHTTPServer(comparator, recorder, logger), reg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to build HTTP router", "err", err)
		os.Exit(1)
	}
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		level.Info(logger).Log("msg", "starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			os.Exit(1)
		}
	}()

	var grpcSrv *grpc.Server
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	if cfg.GRPCPort > 0 {
		grpcSrv = newGRPCServer(healthSrv, logger)
		lis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "listen", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "starting gRPC health server", "port", cfg.GRPCPort)
		go func() {
			if err := grpcSrv.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "serve", "err", err)
				os.Exit(1)
			}
		}()
	}

	startup(ctx, comparator, warmer, cfg.Registry.Enabled(), cfg.Defaults.PageSecure, healthSrv, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	level.Info(logger).Log("msg", "shutting down")
	cancel()
	healthSrv.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "error during HTTP server shutdown", "err", err)
	}
	if grpcSrv != nil {
		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			grpcSrv.Stop()
		}
	}
	level.Info(logger).Log("msg", "server stopped")
}

// startup warms the transport and runs the first discovery pass concurrently. healthSrv reports SERVING
// once the first selection is applied. The returned channel is closed when both are done.
func startup(
	ctx context.Context,
	comparator *service.Comparator,
	warmer *service.Warmer,
	instances []domain.BackendInstance,
	pageSecure bool,
	healthSrv *health.Server,
	logger log.Logger,
) <-chan struct{} {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		warmer.Warmup(ctx, instances, pageSecure)
	}()
	go func() {
		defer wg.Done()
		comparator.Discover(ctx)
		if _, err := comparator.Apply(ctx, comparator.Selection()); err != nil && !errors.Is(err, service.ErrStalePass) {
			level.Warn(logger).Log("msg", "initial selection failed", "err", err)
		}
		healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	}()
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

// newGRPCServer creates the gRPC server exposing healthSrv, with error mapping interceptors.
func newGRPCServer(healthSrv *health.Server, logger log.Logger) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(service.ErrorToGRPCUnaryInterceptor(logger)),
		grpc.ChainStreamInterceptor(service.ErrorToGRPCStreamInterceptor(logger)),
	)
	healthpb.RegisterHealthServer(srv, healthSrv)
	return srv
}
