package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug   bool
	oldRoot string
	newRoot string
)

var rootCmd = &cobra.Command{
	Use:   "storemig",
	Short: "Migrate policy stores to the priority-bucketed layout",
	Long: `storemig moves security policy module stores from the legacy
/etc/selinux layout into the priority-bucketed /var/lib/selinux layout,
preserving the security label of every file and directory it creates,
and then asks the policy store manager to rebuild the active policy.

The migration is safe to re-run: stores already present in the new
layout are skipped.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Output debug information")
	rootCmd.PersistentFlags().StringVar(&oldRoot, "old-root", "", "Legacy policy tree (default /etc/selinux)")
	rootCmd.PersistentFlags().StringVar(&newRoot, "new-root", "", "Migrated policy tree (default /var/lib/selinux)")
}

// newLogger builds the process logger honoring the --debug flag.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "storemig",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
