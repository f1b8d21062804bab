package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"genrelay/internal/config"
	"genrelay/internal/gemini"
	"genrelay/internal/httpapi"
	"genrelay/internal/relay"
)

var version = "dev"

type flags struct {
	configPath  string
	envFile     string
	addr        string
	logLevel    string
	corsOrigins string
	swagger     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "genrelay",
		Short:         "HTTP relay for Gemini text, image, audio and PDF prompts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	root.Flags().StringVar(&f.configPath, "config", os.Getenv("GENRELAY_CONFIG"), "Config file (.yaml, .json, .toml)")
	root.Flags().StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "Dotenv file loaded before reading the environment")
	root.Flags().StringVar(&f.addr, "addr", config.DefaultAddr, "HTTP listen address")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: off|error|info|debug")
	root.Flags().StringVar(&f.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins")
	root.Flags().BoolVar(&f.swagger, "swagger", false, "Serve Swagger UI under /swagger/")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return root
}

// resolveConfig applies explicitly set flags over file and environment values.
func resolveConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg, err := config.Resolve(config.Sources{File: f.configPath, EnvFile: f.envFile})
	if err != nil {
		return cfg, err
	}
	fl := cmd.Flags()
	if fl.Changed("addr") {
		cfg.Addr = f.addr
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("cors-origins") {
		cfg.CORS.Enabled = true
		cfg.CORS.AllowedOrigins = splitCSV(f.corsOrigins)
	}
	if fl.Changed("swagger") {
		cfg.Swagger = f.swagger
	}
	cfg.Normalize()
	return cfg, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	var l zerolog.Logger
	if cfg.LogFormat == "console" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stderr)
	}
	return l.With().Timestamp().Str("service", "genrelay").Logger()
}

func serve(cfg config.Config) error {
	logger := newLogger(cfg)

	httpapi.SetLogger(logger)
	httpapi.SetLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetMaxUploadBytes(cfg.MaxUploadBytes)
	httpapi.SetInferTimeoutSeconds(cfg.RequestTimeoutSeconds)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)
	httpapi.SetSwaggerEnabled(cfg.Swagger)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	if cfg.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set; inference calls will fail")
	}
	client, err := gemini.New(baseCtx, cfg.APIKey, cfg.Models, gemini.WithLogger(logger))
	if err != nil {
		return err
	}
	defer client.Close()

	mux := httpapi.NewMux(relay.New(client))
	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Interface("models", cfg.Models).Msg("genrelay listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// splitCSV splits a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
