package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/shopfront/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts per table",
	Long: `Connects with the configured database settings and prints how many
rows each shop table holds. Useful to check a fresh setup-db run or the
state of a running instance.`,
	RunE: showStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func showStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	counts, err := db.TableCounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	fmt.Printf("\n📋 %s database (%s)\n", cfg.DB.Driver, cfg.DB.Isolation)
	fmt.Println(strings.Repeat("─", 40))
	var total int64
	for _, table := range database.Tables {
		fmt.Printf("   %-22s %8d\n", table, counts[table])
		total += counts[table]
	}
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("   %-22s %8d\n", "total", total)

	if counts["customers"] == 0 {
		fmt.Printf("\n💡 Try running: shopfront setup-db\n")
	}
	return nil
}
