package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"strongbox.dev/internal/application/usecase"
	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
	"strongbox.dev/internal/infrastructure/auth"
	"strongbox.dev/internal/infrastructure/config"
	"strongbox.dev/internal/infrastructure/custody"
	"strongbox.dev/internal/infrastructure/events"
	httphandler "strongbox.dev/internal/infrastructure/http"
	"strongbox.dev/internal/infrastructure/journal"
	"strongbox.dev/internal/infrastructure/logger"
	"strongbox.dev/internal/infrastructure/repository"
)

const serverDir = "server"

var apiServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Run API Server.",
	RunE: func(_ *cobra.Command, _ []string) error {
		// Get config directory (relative to where the binary is run from)
		configDir := filepath.Join("cmd", "config", serverDir)
		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			// Try absolute path from project root
			configDir = filepath.Join(".", "cmd", "config", serverDir)
		}

		// Load configuration
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Initialize logger
		appLogger := logger.NewLogger(cfg.Log.Level)

		appLogger.LogInfo(context.TODO(), "Configuration loaded",
			"port", cfg.Server.Port,
			"custody_mode", cfg.Custody.Mode,
			"timestamp_tolerance", cfg.Auth.TimestampTolerance.String())

		admin, err := entity.ParseAddress(cfg.Auth.Admin)
		if err != nil {
			return fmt.Errorf("invalid administrator address: %w", err)
		}

		secrets := make(map[entity.Address]string, len(cfg.Auth.Keys))
		for _, key := range cfg.Auth.Keys {
			account, err := entity.ParseAddress(key.Account)
			if err != nil {
				return fmt.Errorf("invalid signing key account %q: %w", key.Account, err)
			}
			secrets[account] = key.Secret
		}

		// Initialize the custody backend holding the external funds
		bank, err := buildCustodyBank(cfg, appLogger)
		if err != nil {
			return err
		}

		// Initialize the audit journal
		auditJournal, err := buildJournal(cfg, appLogger)
		if err != nil {
			return err
		}
		if closer, ok := auditJournal.(interface{ Close() error }); ok {
			defer closer.Close()
		}

		// Fan ledger events out to the log and the journal
		bus := events.NewBus(appLogger)
		bus.Subscribe(events.NewLogSink(appLogger))
		bus.Subscribe(events.NewJournalSink(auditJournal))

		// Initialize the ledger
		ledger, err := repository.NewCustodyLedger(admin, bank, bus, appLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize ledger: %w", err)
		}

		// Whitelist the configured assets before accepting traffic
		for _, raw := range cfg.Assets {
			asset, err := entity.ParseAsset(raw)
			if err != nil {
				return fmt.Errorf("invalid whitelist asset %q: %w", raw, err)
			}
			if err := ledger.SetWhitelisted(context.TODO(), admin, asset, true); err != nil {
				return fmt.Errorf("failed to whitelist asset %q: %w", raw, err)
			}
		}

		authenticator := auth.NewHMACAuthenticator(
			secrets,
			cfg.Auth.TimestampTolerance,
			appLogger,
		)

		// Initialize use cases
		handler := httphandler.NewHandler(
			usecase.NewDepositUseCase(ledger),
			usecase.NewWithdrawUseCase(ledger),
			usecase.NewSetPausedUseCase(ledger),
			usecase.NewSetWhitelistedUseCase(ledger),
			usecase.NewGetBalanceUseCase(ledger),
			usecase.NewGetStatusUseCase(ledger),
			usecase.NewListEventsUseCase(auditJournal, admin),
			authenticator,
			appLogger,
		)

		// Setup routes
		router := handler.Router()

		// Create HTTP server
		addr := ":" + cfg.Server.Port
		server := &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Channel to capture termination signals
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

		// Error channel to capture errors from server
		errChan := make(chan error, 1)

		// Start server in a goroutine
		go func() {
			appLogger.LogInfo(context.TODO(), "Starting server",
				"address", addr,
				"whitelisted_assets", len(cfg.Assets),
				"signing_accounts", len(secrets))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		// Graceful shutdown
		select {
		case <-signalChan:
			appLogger.LogInfo(context.TODO(), "Received termination signal. Initiating graceful shutdown...")

			// Create shutdown context with timeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				appLogger.LogError(context.TODO(), "Server forced to shutdown", err)
				return err
			}

			appLogger.LogInfo(context.TODO(), "Server stopped gracefully")
		case err := <-errChan:
			appLogger.LogError(context.TODO(), "Server error", err)
			return err
		}

		return nil
	},
}

// buildCustodyBank selects the transfer backend named by custody.mode.
func buildCustodyBank(cfg *config.Config, appLogger logger.Logger) (port.TransferService, error) {
	if cfg.Custody.Mode == config.CustodyModeRemote {
		appLogger.LogInfo(context.TODO(), "Using remote custody backend",
			"endpoint", cfg.Custody.Endpoint)
		return custody.NewRemoteBank(custody.RemoteConfig{
			Endpoint: cfg.Custody.Endpoint,
			APIKey:   cfg.Custody.APIKey,
			Timeout:  cfg.Custody.RequestTimeout,
		}, appLogger), nil
	}

	bank := custody.NewMemoryBank()
	for _, seed := range cfg.Custody.Seed {
		account, err := entity.ParseAddress(seed.Account)
		if err != nil {
			return nil, fmt.Errorf("invalid custody seed account %q: %w", seed.Account, err)
		}
		asset, err := entity.ParseAsset(seed.Asset)
		if err != nil {
			return nil, fmt.Errorf("invalid custody seed asset %q: %w", seed.Asset, err)
		}
		amount, err := entity.ParseAmount(seed.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid custody seed amount %q: %w", seed.Amount, err)
		}
		bank.SetHolding(account, asset, amount)
	}
	appLogger.LogInfo(context.TODO(), "Using in-memory custody backend",
		"seeded_holdings", len(cfg.Custody.Seed))
	return bank, nil
}

// buildJournal returns the Postgres journal when a database is configured,
// otherwise the bounded in-memory one.
func buildJournal(cfg *config.Config, appLogger logger.Logger) (port.Journal, error) {
	if cfg.Database.URI == "" {
		return journal.NewMemoryJournal(), nil
	}

	pgJournal, err := journal.NewPostgresJournal(context.TODO(), journal.PostgresConfig{
		URI:           cfg.Database.URI,
		MigrationsDir: cfg.Database.MigrationsDir,
	}, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}
	return pgJournal, nil
}

func init() { //nolint:gochecknoinits
	rootCmd.AddCommand(apiServerCmd)
}
