package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/aselbek/carelink/api"
	seeddata "github.com/aselbek/carelink/db"
	"github.com/aselbek/carelink/internal/config"
	"github.com/aselbek/carelink/internal/db"
	"github.com/aselbek/carelink/internal/reports"
	"github.com/aselbek/carelink/internal/schema"
	"github.com/aselbek/carelink/internal/store"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configPath string
	roundRates bool
)

var rootCmd = &cobra.Command{
	Use:   "carelink",
	Short: "carelink is a caregiver marketplace backend",
	Long: `carelink serves a caregiver marketplace over a SQLite store: an
idempotent bulk seeder, per-table CRUD addressed by table name, and a
set of fixed analytic queries.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Materialize the schema, load the seed and serve HTTP",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the seed document and reconcile key generators, then exit",
	RunE:  runSeed,
}

var adjustRatesCmd = &cobra.Command{
	Use:   "adjust-rates",
	Short: "Raise caregiver hourly rates (+0.30 below 10, otherwise +10%)",
	RunE:  runAdjustRates,
}

var updatePhoneCmd = &cobra.Command{
	Use:   "update-phone <given-name> <surname> <phone>",
	Short: "Set the phone number of every user matching a name",
	Args:  cobra.ExactArgs(3),
	RunE:  runUpdatePhone,
}

var deleteJobsCmd = &cobra.Command{
	Use:   "delete-jobs <given-name> <surname>",
	Short: "Delete every job posted by the named member",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeleteJobs,
}

var deleteMembersCmd = &cobra.Command{
	Use:   "delete-members <street>",
	Short: "Delete every member with an address on the named street",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteMembers,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config YAML file")
	adjustRatesCmd.Flags().BoolVar(&roundRates, "round", false, "Round adjusted rates to two decimals")
	rootCmd.AddCommand(serveCmd, seedCmd, adjustRatesCmd, updatePhoneCmd, deleteJobsCmd, deleteMembersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup opens the store stack shared by every command.
func setup(ctx context.Context) (*config.Config, *db.DB, *store.Store, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	conn, err := db.New(ctx, db.DSN(cfg.DatabasePath))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open db: %w", err)
	}

	s := store.New(conn, schema.Default(), logger)
	return cfg, conn, s, logger, nil
}

// loadSeed applies the configured seed file, falling back to the embedded
// dataset, then reconciles the key generators.
func loadSeed(ctx context.Context, cfg *config.Config, s *store.Store, logger *slog.Logger) error {
	var (
		doc []byte
		err error
	)
	if cfg.SeedPath != "" {
		doc, err = os.ReadFile(cfg.SeedPath)
	} else {
		doc, err = seeddata.SeedFiles.ReadFile("seed/data.json")
	}
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}

	if err := s.Load(ctx, doc); err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	for _, r := range s.ReconcileSequences(ctx) {
		if !r.Applied && r.Reason != "no generated primary key" {
			logger.Warn("sequence not reconciled", "table", r.Table, "reason", r.Reason)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, conn, s, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("starting carelink", "version", version, "buildTime", buildTime)

	if err := s.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("materialize schema: %w", err)
	}
	if err := loadSeed(ctx, cfg, s, logger); err != nil {
		return err
	}

	api.SetLogger(logger)
	handler := api.SetupRoutes(version, buildTime, s, reports.New(conn, logger))

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}
	logger.Info("shutting down")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, conn, s, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := s.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("materialize schema: %w", err)
	}
	if err := loadSeed(ctx, cfg, s, logger); err != nil {
		return err
	}

	logger.Info("seed complete", "database", cfg.DatabasePath)
	return nil
}

func runAdjustRates(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, conn, s, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	mode := store.RoundOff
	if roundRates {
		mode = store.RoundTo2
	}
	affected, err := s.AdjustHourlyRates(ctx, mode)
	if err != nil {
		return fmt.Errorf("adjust rates: %w", err)
	}

	logger.Info("rates adjusted", "caregivers", affected)
	return nil
}

func runUpdatePhone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, conn, s, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	affected, err := s.UpdatePhoneByName(ctx, args[0], args[1], args[2])
	if err != nil {
		return fmt.Errorf("update phone: %w", err)
	}

	logger.Info("phone updated", "given_name", args[0], "surname", args[1], "users", affected)
	return nil
}

func runDeleteJobs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, conn, s, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	affected, err := s.DeleteJobsByPoster(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("delete jobs: %w", err)
	}

	logger.Info("jobs deleted", "given_name", args[0], "surname", args[1], "jobs", affected)
	return nil
}

func runDeleteMembers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, conn, s, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	affected, err := s.DeleteMembersOnStreet(ctx, args[0])
	if err != nil {
		return fmt.Errorf("delete members: %w", err)
	}

	logger.Info("members deleted", "street", args[0], "members", affected)
	return nil
}
