package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/policytools/storemig/internal/selinux"
	"github.com/policytools/storemig/store"
)

var listCmd = &cobra.Command{
	Use:   "list [store]",
	Short: "List modules in a migrated store",
	Long: `List the modules of a store in the migrated layout, one line per
module name. When a module exists at several priorities only the
highest-priority instance is shown. The store defaults to the active
policy type.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	storeName := ""
	if len(args) == 1 {
		storeName = args[0]
	} else {
		plat := &selinux.System{Dir: oldRoot}
		typ, err := plat.PolicyType()
		if err != nil {
			return fmt.Errorf("no store given and active policy type unknown: %w", err)
		}
		storeName = typ
	}

	l := store.DefaultLayout(store.PriorityMin)
	if oldRoot != "" {
		l.OldRoot = oldRoot
	}
	if newRoot != "" {
		l.NewRoot = newRoot
	}

	mods, err := store.ListModules(l, storeName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRIORITY\tVERSION\tLANG\tENABLED")
	for _, m := range mods {
		enabled := "yes"
		if m.Enabled == store.EnabledOff {
			enabled = "no"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", m.Name, m.Priority, m.Version, m.LangExt, enabled)
	}
	return w.Flush()
}
