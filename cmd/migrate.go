package cmd

import (
	"fmt"

	"anime-tracker/feature/catalog"
	"anime-tracker/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Applies the catalog schema and verifies the catalog tables carry every expected column. With --check nothing is changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		checkOnly, _ := cmd.Flags().GetBool("check")
		if !checkOnly {
			if err := catalog.Migrate(a.db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			a.logger.Info("Database schema migrated")
		}

		report, err := checks.CheckSchema(a.db)
		if err != nil {
			return err
		}
		if !report.Matched {
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" {
					a.logger.Error("Schema mismatch", zap.String("table", table), zap.String("status", tbl.Status), zap.Strings("missing", tbl.MissingColumns))
				}
			}
			return fmt.Errorf("schema check failed on %s", report.Driver)
		}

		a.logger.Info("Schema check passed", zap.Int("tables", len(report.Tables)))
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("check", false, "only verify the schema")
	RootCmd.AddCommand(migrateCmd)
}
