package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/hutch/pkg/api"
	"github.com/cuemby/hutch/pkg/config"
	"github.com/cuemby/hutch/pkg/dnsgw"
	"github.com/cuemby/hutch/pkg/endpoint"
	"github.com/cuemby/hutch/pkg/events"
	"github.com/cuemby/hutch/pkg/inventory"
	"github.com/cuemby/hutch/pkg/journal"
	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/reconciler"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hutch",
	Short: "Hutch - DNS reconciler for direct-routed game apps",
	Long: `Hutch keeps DNS records synchronized with the live placement of
single-active-instance ("direct-routed") applications running on a
decentralized compute network. It observes the network's reported state,
resolves each app's currently-active endpoint through the partitioned
lookup service, and reconciles DNS zones to match.`,
	Version: Version,
}

func init() {
	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Hutch version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	runCmd.Flags().String("config", "/etc/hutch/hutch.yaml", "Path to the configuration file")
	runCmd.Flags().String("log-level", "", "Override the configured log level")
	checkConfigCmd.Flags().String("config", "/etc/hutch/hutch.yaml", "Path to the configuration file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkConfigCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reconciler and its front-door HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		log.Init(log.Config{
			Level:      log.Level(cfg.Log.Level),
			JSONOutput: cfg.Log.JSON,
		})
		logger := log.WithComponent("main")
		logger.Info().Str("version", Version).Int("zones", len(cfg.Zones)).Msg("Starting Hutch")

		gateway := dnsgw.NewClient(dnsgw.Config{
			URL:      cfg.Gateway.URL,
			Enabled:  cfg.Gateway.Enabled,
			CertFile: cfg.Gateway.CertFile,
			KeyFile:  cfg.Gateway.KeyFile,
			CAFile:   cfg.Gateway.CAFile,
			Timeout:  cfg.Gateway.Timeout.Std(),
		})

		broker := events.NewBroker()
		broker.Start()

		var j *journal.Journal
		if cfg.JournalPath != "" {
			j, err = journal.Open(cfg.JournalPath)
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			j.Follow(broker)
		}

		rec := reconciler.New(reconciler.Config{
			PollInterval: cfg.PollInterval.Std(),
			GracePeriod:  cfg.GracePeriod.Std(),
			Zones:        cfg.Zones,
			Prefixes:     cfg.Prefixes,
		},
			inventory.NewClient(cfg.InventoryURL, cfg.LookupTimeout.Std()),
			endpoint.NewResolver(cfg.LookupTimeout.Std()),
			gateway,
			broker,
		)
		rec.Start()

		apiServer := api.NewServer(rec, j)
		errCh := make(chan error, 1)
		go func() {
			if err := apiServer.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("front door error: %w", err)
			}
		}()

		// Wait for interrupt signal or listener failure
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sigCh:
			logger.Info().Msg("Shutting down")
		case err := <-errCh:
			// Failing to bind the front door is the one fatal error
			return err
		}

		rec.Stop()
		if err := apiServer.Stop(); err != nil {
			logger.Error().Err(err).Msg("Front door shutdown failed")
		}
		if j != nil {
			j.Unfollow(broker)
		}
		broker.Stop()
		if j != nil {
			if err := j.Close(); err != nil {
				logger.Error().Err(err).Msg("Journal close failed")
			}
		}

		logger.Info().Msg("Shutdown complete")
		return nil
	},
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Parse and validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration OK\n")
		fmt.Printf("  Poll interval: %s\n", cfg.PollInterval)
		fmt.Printf("  Grace period:  %s\n", cfg.GracePeriod)
		fmt.Printf("  Prefixes:      %v\n", cfg.Prefixes)
		fmt.Printf("  Gateway:       %s (enabled: %v)\n", cfg.Gateway.URL, cfg.Gateway.Enabled)
		for _, zone := range cfg.Zones {
			fmt.Printf("  Zone:          %s (ttl: %d, shards: %s)\n", zone.Name, zone.TTL, zone.ShardURLPattern)
		}
		return nil
	},
}
