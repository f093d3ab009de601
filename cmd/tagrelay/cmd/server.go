package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jmcleod/tagrelay/api"
	"github.com/jmcleod/tagrelay/internal/config"
)

var (
	listenAddr string
	tlsCert    string
	tlsKey     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the relay server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, serverOverrides(cmd)...)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		client, err := newLookupClient(cfg, logger)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a := api.New(client, api.WithLogger(logger), api.WithRegistry(reg))

		server := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           newRootHandler(a, logger),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      cfg.UpstreamTimeout + 15*time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			var err error
			if cfg.TLSCert != "" {
				err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			} else {
				err = server.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner(cmd.OutOrStdout())
		logger.Info("relay listening", "addr", cfg.ListenAddr, "tls", cfg.TLSCert != "")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

// newRootHandler wraps the relay with request IDs and access logging.
func newRootHandler(a *api.API, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.With("component", "http").Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Mount("/", a.Handler())
	return r
}

func serverOverrides(cmd *cobra.Command) []func(*config.Config) {
	var out []func(*config.Config)
	flags := cmd.Flags()
	if flags.Changed("listen") {
		out = append(out, func(c *config.Config) { c.ListenAddr = listenAddr })
	}
	if flags.Changed("tls-cert") {
		out = append(out, func(c *config.Config) { c.TLSCert = tlsCert })
	}
	if flags.Changed("tls-key") {
		out = append(out, func(c *config.Config) { c.TLSKey = tlsKey })
	}
	return out
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringVarP(&listenAddr, "listen", "l", ":3001", "Address to listen on")
	serverCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to TLS certificate file")
	serverCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to TLS key file")
}
