package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brickdeals/internal/controllers"
	"brickdeals/internal/pipeline/interfaces"
	"brickdeals/internal/providers"
	"brickdeals/internal/structures"
)

type App struct {
	WebServer *http.Server
}

func NewApp(pushController *controllers.PushController, adminController *controllers.AdminController, dealController *controllers.DealController, healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, limiter providers.RateLimitProviderInterface) (*App, error) {
	// Inner mux: API routes, rate limited per client IP
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	var api http.Handler = apiMux
	api = providers.RateLimitMiddleware(limiter, metrics, api)
	api = providers.MetricsMiddleware(metrics, api)
	api = providers.CORSMiddleware(conf, api)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/healthCheck", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", api)

	logger.Infof(providers.TypeApp, "Starting %s %s", conf.AppName, conf.Version)
	if conf.Security.AdminKey == "" {
		logger.Warnf(providers.TypeApp, "No admin key configured: admin endpoints are open and CORS reflects any origin (development mode)")
	}

	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
