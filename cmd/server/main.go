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
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/reflection"

	"github.com/penspanic/Datra-sub005/internal/services"
	"github.com/penspanic/Datra-sub005/internal/transport/grpc/editor"
	httphandler "github.com/penspanic/Datra-sub005/internal/transport/http"
)

func main() {
	// 1. Load configuration from environment variables
	config := loadConfig()

	log, err := newLogger(config.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(config, log); err != nil {
		log.Fatal("failed to run server", zap.Error(err))
	}
}

func run(config Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting table editor",
		zap.String("spanner_database", config.SpannerDB),
		zap.String("grpc_port", config.GRPCPort),
		zap.String("http_port", config.HTTPPort),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, config.SpannerDB, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Load every table's baseline
	loaded, err := serviceOpts.Tables.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}
	for _, result := range loaded {
		log.Info("table loaded", zap.String("table", result.Table), zap.Int("rows", result.Rows))
	}

	// 4. Create gRPC server and register services
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(editor.LoggingInterceptor(log)))
	editor.RegisterEditorServer(grpcServer, serviceOpts.EditorHandler)

	// Enable reflection (for grpcurl and debugging)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+config.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	// 5. Create HTTP server. The journal route goes through the gRPC API.
	grpcConn, err := grpc.NewClient("localhost:"+config.GRPCPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to gRPC: %w", err)
	}
	defer grpcConn.Close()

	httpServer := &http.Server{
		Addr:              ":" + config.HTTPPort,
		Handler:           httphandler.NewRouter(serviceOpts.Tables, editor.NewClient(grpcConn), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 6. Graceful shutdown handling
	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server failed", zap.Error(err))
	}

	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}
	grpcServer.GracefulStop()

	return nil
}

// Config holds application configuration.
type Config struct {
	SpannerDB       string
	GRPCPort        string
	HTTPPort        string
	LogDevelopment  bool
	ShutdownTimeout time.Duration
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	shutdownTimeout, err := time.ParseDuration(getEnvOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}
	logDevelopment, _ := strconv.ParseBool(os.Getenv("LOG_DEVELOPMENT"))

	return Config{
		// Default for local development with emulator
		SpannerDB:       getEnvOrDefault("SPANNER_DATABASE", "projects/test-project/instances/dev-instance/databases/datra-db"),
		GRPCPort:        getEnvOrDefault("GRPC_PORT", "9090"),
		HTTPPort:        getEnvOrDefault("HTTP_PORT", "8080"),
		LogDevelopment:  logDevelopment,
		ShutdownTimeout: shutdownTimeout,
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
