package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"syslogbull/internal/cache"
	"syslogbull/internal/config"
	"syslogbull/internal/downdetect"
	"syslogbull/internal/features/disk"
	logs_cleanup "syslogbull/internal/features/logs/cleanup"
	logs_core "syslogbull/internal/features/logs/core"
	logs_querying "syslogbull/internal/features/logs/querying"
	logs_receiving "syslogbull/internal/features/logs/receiving"
	system_healthcheck "syslogbull/internal/features/system/healthcheck"
	"syslogbull/internal/storage"
	env_utils "syslogbull/internal/util/env"
	"syslogbull/internal/util/logger"
	_ "syslogbull/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title syslogbull API
// @version 1.0
// @description Search API for syslog records collected over TCP and UDP
// @host localhost:4005
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()
	config.StartListeningForShutdownSignal()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	testCacheConnection(log)
	runMigrations(log)

	supervisor := logs_receiving.GetListenerSupervisor()
	if err := supervisor.Bind(); err != nil {
		log.Error("Failed to bind syslog listeners", slog.String("error", err.Error()))
		os.Exit(1)
	}

	supervisorDone := make(chan error, 1)
	go func() {
		supervisorDone <- supervisor.Run(ctx)
	}()

	cleanupService := logs_cleanup.GetLogCleanupBackgroundService()
	cleanupService.StartWorkers(ctx)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.New()
	ginApp.Use(gin.Recovery())

	ginApp.Use(gzip.Gzip(gzip.DefaultCompression))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	startServerWithGracefulShutdown(ctx, log, ginApp)

	if err := <-supervisorDone; err != nil {
		log.Error("Syslog listeners stopped with error", slog.String("error", err.Error()))
	}
	cleanupService.Wait()

	if err := storage.Close(storage.GetDb()); err != nil {
		log.Error("Failed to close database", slog.String("error", err.Error()))
	}

	log.Info("Shutdown complete")
}

func startServerWithGracefulShutdown(ctx context.Context, log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, config.GetEnv().HttpPort),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", slog.String("error", err.Error()))
		}
	}()

	log.Info("HTTP server started", slog.String("address", srv.Addr))

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)
	downdetect.GetDowndetectController().RegisterRoutes(v1)
	disk.GetDiskController().RegisterRoutes(v1)
	logs_querying.GetLogQueryController().RegisterRoutes(v1, logs_querying.GetLogQueryMiddlewares()...)
}

func testCacheConnection(log *slog.Logger) {
	client := cache.GetCache()
	if client == nil {
		log.Info("Valkey is not configured, using in-process rate limiting")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cache.Ping(ctx, client); err != nil {
		log.Error("Failed to connect to Valkey", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("Valkey connection test successful")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	if err := logs_core.GetLogCoreRepository().Migrate(); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Encoding",
			},
		}))
	}
}
