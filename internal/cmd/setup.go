package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/shopfront/internal/database"
)

var (
	dropFirst bool
	skipData  bool
)

var setupCmd = &cobra.Command{
	Use:   "setup-db",
	Short: "Set up database schema and sample data",
	Long: `Creates the shop tables (customers, suppliers, products,
product_availability, orders, order_items) for the configured driver and
populates them with a small sample catalog and a few orders.`,
	RunE: setupDatabase,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop existing tables before creating")
	setupCmd.Flags().BoolVar(&skipData, "schema-only", false, "Create schema only, skip sample data")
}

func setupDatabase(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Setting up database...")
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Drop tables if requested
	if dropFirst {
		fmt.Println("🗑️  Dropping existing tables...")
		if err := db.DropSchema(ctx); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	fmt.Println("📋 Creating schema...")
	if err := db.SetupSchema(ctx); err != nil {
		return fmt.Errorf("failed to setup schema: %w", err)
	}

	if !skipData {
		fmt.Println("📊 Populating with sample data...")
		if err := db.SeedSample(ctx); err != nil {
			return fmt.Errorf("failed to populate sample data: %w", err)
		}
		for _, table := range database.Tables {
			fmt.Printf("   ➕ %-22s %d rows\n", table, database.SampleCounts[table])
		}
	}

	fmt.Println("✅ Database setup complete!")
	return nil
}
