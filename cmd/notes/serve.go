package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/sir_venger/notes_lite/internal/app/resthttp"
	"github.com/sir_venger/notes_lite/internal/config"
	"github.com/sir_venger/notes_lite/internal/notestore"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

type serveOptions struct {
	configPath string
	host       string
	port       int
	root       string
	gops       bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the notes HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(cmd, opts)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, opts.gops)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file (defaults to $"+config.EnvConfigPath+")")
	f.StringVar(&opts.host, "host", config.DefaultHost, "bind host")
	f.IntVar(&opts.port, "port", config.DefaultPort, "bind port")
	f.StringVar(&opts.root, "root", config.DefaultStorageRoot, "storage root directory")
	f.BoolVar(&opts.gops, "gops", false, "start the gops diagnostics agent")

	return cmd
}

// loadServeConfig применяет флаги поверх файла и ENV: явно заданный флаг важнее всего.
func loadServeConfig(cmd *cobra.Command, opts serveOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("host") {
		cfg.Host = opts.host
	}
	if f.Changed("port") {
		cfg.Port = opts.port
	}
	if f.Changed("root") {
		cfg.StorageRoot = opts.root
	}
	if f.Lookup("log-level") != nil && f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// serve поднимает HTTP-сервис и обеспечивает корректное завершение по сигналу.
func serve(parent context.Context, cfg *config.Config, withGops bool) error {
	log := logrus.StandardLogger()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	if withGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.WithField("err", err).Warn("could not start gops agent")
		} else {
			defer agent.Close()
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, _, err := resthttp.NewServer(ctx, cfg, log)
	if err != nil {
		return err
	}

	unlock, err := notestore.LockRoot(ctx, cfg.StorageRoot)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			log.WithField("err", err).Warn("unlock storage root")
		}
	}()

	stopSweep := notestore.StartSweeper(cfg.StorageRoot, cfg.SweepTTL, cfg.SweepEvery, log)
	defer stopSweep()

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr": cfg.ListenAddr(),
			"root": cfg.StorageRoot,
		}).Info("notes listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("err", err).Error("shutdown error")
			return err
		}
		return nil
	})

	return eg.Wait()
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
