package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/policytools/storemig/internal/selinux"
	"github.com/policytools/storemig/migrate"
	"github.com/policytools/storemig/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate legacy stores and rebuild the active policy",
	Long: `Migrate every policy store found under the legacy root (or one
store with --store) into the priority-bucketed layout, then run a
rebuild transaction against the policy store manager.

Examples:
  # Migrate all stores at the default priority
  storemig migrate

  # Migrate one store at priority 200 and clean up the old modules
  storemig migrate -s targeted -p 200 -c`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var (
	migratePriority int
	migrateStore    string
	migrateClean    bool
)

func init() {
	migrateCmd.Flags().IntVarP(&migratePriority, "priority", "p", 100,
		fmt.Sprintf("Priority of migrated modules (%d-%d)", store.PriorityMin, store.PriorityMax))
	migrateCmd.Flags().StringVarP(&migrateStore, "store", "s", "", "Migrate only this store")
	migrateCmd.Flags().BoolVarP(&migrateClean, "clean", "c", false,
		"Remove the legacy modules directory after a successful migration")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	plat := &selinux.System{Dir: oldRoot}
	m, err := migrate.New(migrate.Options{
		Priority: migratePriority,
		Store:    migrateStore,
		CleanOld: migrateClean,
		OldRoot:  oldRoot,
		NewRoot:  newRoot,
	}, plat, newLogger())
	if err != nil {
		return err
	}
	return m.Run()
}
