// cmd/spacewarriors-ssh/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/health"
	"github.com/opd-ai/space-warriors/pkg/logging"
	"github.com/opd-ai/space-warriors/pkg/resource"
	"github.com/opd-ai/space-warriors/pkg/validation"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to game configuration file")
	flag.Parse()

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Invalid environment configuration", err)
		os.Exit(1)
	}

	var gameConfig *config.GameConfig
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	sessions := resource.NewSessionManager(envConfig, logger)
	if err := sessions.Start(); err != nil {
		logger.Error(ctx, "Failed to start session manager", err)
		os.Exit(1)
	}

	limiter := validation.NewRateLimiter(envConfig.ConnectRate, envConfig.ConnectWindow)
	defer limiter.Close()

	gs := &gameServer{
		gameConfig: gameConfig,
		envConfig:  envConfig,
		sessions:   sessions,
		limiter:    limiter,
		logger:     logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(envConfig.ListenAddress()),
		wish.WithHostKeyPath(envConfig.HostKeyPath),
		wish.WithIdleTimeout(envConfig.IdleTimeout),
		wish.WithMiddleware(
			gs.middleware,
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
		// Game input is a stream of single keys
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	)
	if err != nil {
		logger.Error(ctx, "Failed to create SSH server", err)
		os.Exit(1)
	}

	listener, err := net.Listen("tcp", envConfig.ListenAddress())
	if err != nil {
		logger.Error(ctx, "Failed to listen", err, "address", envConfig.ListenAddress())
		os.Exit(1)
	}
	var listening atomic.Bool
	listening.Store(true)

	healthChecker := health.NewHealthChecker()
	healthChecker.AddCheck(health.NewSessionCapacityHealthCheck(sessions.ActiveSessions, sessions.MaxSessions()))
	healthChecker.AddCheck(health.NewListenerHealthCheck(func() string {
		if !listening.Load() {
			return ""
		}
		return listener.Addr().String()
	}))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(envConfig.MaxMemoryMB, nil))
	healthChecker.AddCheck(resource.NewSessionHealthCheck(sessions))

	healthServer := &http.Server{
		Addr:         ":" + strconv.Itoa(envConfig.HealthPort),
		Handler:      healthChecker.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting health check server", "port", envConfig.HealthPort)
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Starting SSH server",
			"address", listener.Addr().String(),
			"max_sessions", envConfig.MaxSessions,
		)
		err := server.Serve(listener)
		listening.Store(false)
		serveErr <- err
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info(ctx, "Shutting down server", "signal", sig.String())
	case err := <-serveErr:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error(ctx, "SSH server failed", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), envConfig.ShutdownTimeout+5*time.Second)
	defer cancel()

	// Sessions first, so players see their game end before the connection drops
	if err := sessions.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Session manager shutdown failed", err)
	}

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Error(ctx, "SSH server shutdown failed", err)
	}
	listening.Store(false)

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Health check server shutdown failed", err)
	}

	stats := sessions.Stats()
	logger.Info(ctx, "Server stopped",
		"sessions_started", stats.StartedSessions,
		"sessions_rejected", stats.RejectedSessions,
		"panics", stats.Panics,
	)
}
