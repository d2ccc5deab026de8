package cmd

import (
	"fmt"

	"cosign/config"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "create or update the tables of the db backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Backend != config.BackendDB {
			return fmt.Errorf("backend %s keeps no tables", cfg.Backend)
		}

		// registered by the store packages imported in provider.go
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		cmd.Println("tables of vaults, signers, proposals and decisions are up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
