package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"textgate/internal/config"
	"textgate/internal/httpapi"
	"textgate/internal/manager"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Example: "  textgate serve --model-path ./models/gemma.gguf --port 5000\n" +
			"  MODEL_PATH=/models/m.gguf textgate serve -c textgate.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveServeConfig(cmd, f, opts, os.LookupEnv)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, os.Stderr, nil)
		},
	}
	f.register(cmd)
	return cmd
}

// resolveServeConfig applies defaults, the config file, the environment and
// finally the flags, then validates the result.
func resolveServeConfig(cmd *cobra.Command, f *serveFlags, opts *rootOptions, lookup config.LookupFunc) (config.Config, error) {
	cfg, err := config.Resolve(f.configPath, lookup)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	f.apply(cmd, &cfg)
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runServe runs the server until ctx is done. adapter overrides the model
// runtime binding when non-nil. Binding failures are returned immediately.
func runServe(ctx context.Context, cfg config.Config, logOut io.Writer, adapter manager.InferenceAdapter) error {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logOut)
	lockWait, err := cfg.LockWait()
	if err != nil {
		return err
	}

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		ModelPath:   cfg.ModelPath,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		ContextSize: cfg.ContextSize,
		Threads:     cfg.Threads,
		MaxWait:     lockWait,
		Adapter:     adapter,
		Publisher:   manager.NewLogPublisher(logger),
		Logger:      &logger,
	})
	rep := mgr.SanityCheck()
	ev := logger.Info()
	if rep.Error != "" {
		ev = logger.Warn().Str("problem", rep.Error)
	}
	ev.Bool("runtime_available", rep.RuntimeAvailable).
		Bool("asset_found", rep.AssetFound).
		Str("model_path", rep.AssetPath).
		Int("asset_size_mb", rep.AssetSizeMB).
		Msg("startup check")

	httpapi.SetLogger(logger)
	httpapi.SetRequestLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
	baseCtx, cancelBase := context.WithCancel(ctx)
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}
	// Loading runs in the background; requests are served while it is in flight.
	loaded := mgr.Start()

	srv := &http.Server{
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Str("model_path", cfg.ModelPath).Msg("textgate listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	// Graceful shutdown: abort lock waits, then drain in-flight requests.
	cancelBase()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	select {
	case <-loaded:
	case <-shutdownCtx.Done():
		logger.Warn().Msg("model initialization still running at exit")
	}
	logger.Info().Msg("textgate stopped")
	return nil
}
