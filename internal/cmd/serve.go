package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/shopfront/internal/database"
	"github.com/matthieukhl/shopfront/internal/logging"
	"github.com/matthieukhl/shopfront/internal/server"
	"github.com/matthieukhl/shopfront/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Shopfront API server",
	Long: `Start the Shopfront API server. It serves until it receives SIGINT
or SIGTERM, then stops accepting requests, waits for in-flight ones up to
server.shutdown_timeout and closes the database pool.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":5000", "listen address, overrides server.addr")
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Shopfront Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	fmt.Println("✅ Database connected successfully")

	rules := service.RulesFromConfig(cfg.Compat)
	logger.Info().
		Str("driver", cfg.DB.Driver).
		Str("isolation", cfg.DB.Isolation).
		Stringer("reference_scope", rules.ReferenceScope).
		Bool("legacy_product_duplicates", rules.LegacyProductDuplicates).
		Msg("database ready")

	fmt.Println("⚙️  Setting up server...")
	shop := service.NewShop(db, rules, logger)
	srv := server.NewServer(cfg.Server, db, shop, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	logger.Info().Str("addr", cfg.Server.Addr).Msg("http server listening")
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	fmt.Println("👋 Server stopped")
	return nil
}
