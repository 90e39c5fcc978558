package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "footdash",
		Short:        "Football player statistics dashboard",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newImportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the player report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, data, logger)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "CSV/XLSX file or URL to import before serving")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|url>",
		Short: "Replace the stored dataset with a CSV or XLSX export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			st, err := openStore(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			imp, err := importDataset(cmd.Context(), st, args[0], logger)
			if err != nil {
				logger.Error("import failed", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows from %s (%s)\n", imp.RowCount, imp.Source, imp.ID)
			return nil
		},
	}
}

func serve(ctx context.Context, cfg Config, data string, logger *zap.Logger) error {
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if data != "" {
		if _, err := importDataset(ctx, st, data, logger); err != nil {
			return err
		}
	}

	rep, err := loadReport(ctx, st, cfg.Report, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newServer(rep, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("footdash is running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
