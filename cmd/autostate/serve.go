package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autostate/autostate"
	httpAdapter "github.com/autostate/autostate/internal/adapters/http"
	"github.com/autostate/autostate/internal/adapters/openai"
	"github.com/autostate/autostate/internal/config"
	"github.com/autostate/autostate/internal/logging"
	"github.com/autostate/autostate/pkg/adapters/file"
	"github.com/autostate/autostate/pkg/adapters/memory"
	redisAdapter "github.com/autostate/autostate/pkg/adapters/redis"
	"github.com/autostate/autostate/pkg/persistence/middleware"
	"github.com/autostate/autostate/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the AutoState engine in server mode, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr, _ = cmd.Flags().GetString("addr")
		}

		logger := logging.New(parseLevel(cfg.LogLevel))

		var store ports.ModelStore = memory.NewStore()
		switch {
		case cfg.RedisAddr != "":
			store = redisAdapter.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
				redisAdapter.WithPrefix(cfg.RedisPrefix),
				redisAdapter.WithTTL(cfg.RedisTTL),
			)
			logger.Info("using redis model store", "addr", cfg.RedisAddr)
		case cfg.DataDir != "":
			store = file.New(cfg.DataDir)
			logger.Info("using filesystem model store", "dir", cfg.DataDir)
		}
		store = middleware.Chain(store,
			middleware.NewLoggingMiddleware(logger),
			middleware.NewValidationMiddleware(),
		)

		opts := []autostate.Option{autostate.WithLogger(logger)}
		if cfg.OpenAIKey != "" {
			parserOpts := []openai.Option{openai.WithModel(cfg.OpenAIModel)}
			if cfg.OpenAIBaseURL != "" {
				parserOpts = append(parserOpts, openai.WithBaseURL(cfg.OpenAIBaseURL))
			}
			opts = append(opts, autostate.WithParser(openai.New(cfg.OpenAIKey, parserOpts...)))
			logger.Info("scenario parser enabled", "model", cfg.OpenAIModel)
		} else {
			logger.Warn("no OPENAI_API_KEY set; scenario parsing disabled")
		}

		service := autostate.New(store, opts...)
		handler := httpAdapter.NewHandler(service, logger)

		srv := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting autostate server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server error", "err", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("autostate server stopped")
		}
	},
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides AUTOSTATE_HTTP_ADDR)")
}
