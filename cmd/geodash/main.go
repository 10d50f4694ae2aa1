package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/geodash/internal/config"
	"github.com/TobiSchelling/geodash/internal/database"
	"github.com/TobiSchelling/geodash/internal/fixtures"
	"github.com/TobiSchelling/geodash/internal/metricreg"
	"github.com/TobiSchelling/geodash/internal/querystate"
	"github.com/TobiSchelling/geodash/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "geodash",
	Short:   "AI search visibility dashboard",
	Long:    "geodash tracks how AI assistants answer questions about a brand and serves the results as a filterable dashboard.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger("console", "info")

		// These work without a config file.
		switch cmd.Name() {
		case "init", "version", "metrics", "href":
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger = newLogger(cfg.Logging.Format, level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(hrefCmd)
}

func newLogger(format, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format == "json" {
		return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(lvl).With().Timestamp().Logger()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("geodash", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/geodash/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Run 'geodash seed' to load the demo dataset, then 'geodash serve'.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n", db.Path())
		fmt.Printf("Environment: %s\n\n", cfg.Environment)
		fmt.Println("Dataset:")
		fmt.Printf("  Brands: %d\n", stats.Brands)
		fmt.Printf("  Topics: %d\n", stats.Topics)
		fmt.Printf("  Answers: %d\n", stats.Answers)
		fmt.Printf("  Suggestions: %d\n", stats.Suggestions)
		fmt.Printf("  Assets: %d\n", stats.Assets)
		fmt.Printf("  Metric values: %d\n", stats.MetricValues)
		return nil
	},
}

// --- seed command ---

var seedCmd = &cobra.Command{
	Use:   "seed [fixtures.yaml]",
	Short: "Replace the dataset with a fixture file (default: built-in demo)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Fixtures.Path
		if len(args) > 0 {
			path = args[0]
		}

		set, err := fixtures.Load(path)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.ImportFixtures(set); err != nil {
			return fmt.Errorf("importing fixtures: %w", err)
		}

		source := path
		if source == "" {
			source = "built-in demo"
		}
		fmt.Printf("Seeded %s from %s\n", db.Path(), source)
		fmt.Printf("  %d brands, %d topics, %d answers, %d assets\n",
			len(set.Brands), len(set.Topics), len(set.Answers), len(set.Assets))
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		reg := registry()
		srv, err := server.New(db, server.Options{
			Registry: reg,
			Logger:   &logger,
			Origin:   cfg.Server.Origin,
		})
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(ctx, srv, fmt.Sprintf(":%d", port))
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to run server on")
}

// --- metrics command ---

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List metric definitions and their sample thresholds",
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range metricreg.Default().Definitions() {
			if d.Sample == nil {
				fmt.Printf("  %-18s %-20s no sample check\n", d.ID, d.Label)
				continue
			}
			fmt.Printf("  %-18s %-20s n<%d: %s\n", d.ID, d.Label, d.Sample.MinSample, d.Sample.LowSampleLabel)
		}
	},
}

// --- href command ---

var hrefCmd = &cobra.Command{
	Use:   "href <target> [query]",
	Short: "Build a link to target that carries the filters in query",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) > 1 {
			query = strings.TrimPrefix(args[1], "?")
		}
		fmt.Println(querystate.BuildHref(args[0], query))
	},
}

func registry() *metricreg.Registry {
	return metricreg.Default().With(
		metricreg.Strict(cfg.IsDevelopment()),
		metricreg.WithLogger(&logger),
	)
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "geodash.db")
	return database.Open(dbPath, &logger)
}
