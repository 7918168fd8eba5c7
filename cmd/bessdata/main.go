// Package main provides the CLI entry point for bessdata.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/bessdata-go/pkg/bessdata"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/config"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/observability"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/output"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/registry"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/server"
	"go.uber.org/zap"
)

var (
	workbookPath string
	cacheDir     string
	outputPath   string
	pretty       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bessdata",
		Short: "Extract BESS procurement data from an Excel workbook",
		Long: `bessdata turns the supplier and project sheets of a procurement workbook
into JSON artifacts, one per category, and serves them over HTTP.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&workbookPath, "workbook", "", "Source workbook (default: $BESSDATA_WORKBOOK)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Artifact directory (default: $BESSDATA_CACHE_DIR)")

	showCmd := &cobra.Command{
		Use:       "show <suppliers|projects>",
		Short:     "Print the records of one category",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(models.CategorySuppliers), string(models.CategoryProjects)},
		RunE:      runShow,
	}
	showCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	showCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "regenerate",
			Short: "Re-extract every category and overwrite the artifacts",
			Args:  cobra.NoArgs,
			RunE:  runRegenerate,
		},
		showCmd,
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the artifacts over HTTP",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *bessdata.Store
}

func setup(metrics *observability.Metrics) (*app, error) {
	if _, err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if workbookPath != "" {
		cfg.WorkbookPath = workbookPath
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	reg := registry.Default()
	if cfg.RegistryPath != "" {
		reg, err = registry.Load(cfg.RegistryPath)
		if err != nil {
			return nil, err
		}
		logger.Info("registry loaded", zap.String("path", cfg.RegistryPath), zap.Int("sheets", len(reg.SheetNames())))
	}

	store := bessdata.NewStore(cfg.WorkbookPath, cfg.CacheDir, bessdata.Options{
		Registry: reg,
		Logger:   logger,
		Metrics:  metrics,
	})
	return &app{cfg: cfg, logger: logger, store: store}, nil
}

func runRegenerate(cmd *cobra.Command, _ []string) error {
	a, err := setup(nil)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck // stderr sync may fail on some platforms

	if err := a.store.Regenerate(cmd.Context()); err != nil {
		return fmt.Errorf("regenerate failed: %w", err)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := setup(nil)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck // stderr sync may fail on some platforms

	records, err := a.store.LoadOrExtract(cmd.Context(), models.Category(args[0]))
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}

	jsonData, err := output.ToJSON(records, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := setup(observability.NewMetrics())
	if err != nil {
		return err
	}
	logger := a.logger
	defer logger.Sync() //nolint:errcheck // stderr sync may fail on some platforms

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed warm-up leaves /readyz reporting not ready; requests retry the load.
	if err := a.store.Warm(ctx); err != nil {
		logger.Error("warm-up failed", zap.Error(err))
	}

	srv := server.New(a.cfg.HTTPAddr, a.store, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
	return nil
}
