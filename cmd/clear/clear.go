// Package clear provides the clear command for carnet
package clear

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/datastore"
)

// Command creates and returns the clear command
func Command(settings *conf.Settings) *cobra.Command {
	var storeName string
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record in a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(settings, storeName, confirmed)
		},
	}
	cmd.Flags().StringVar(&storeName, "store", datastore.StoreMain, "Store to clear: main or archive")
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the destructive clear")

	return cmd
}

func runClear(settings *conf.Settings, storeName string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("clear deletes every record in the %s store; re-run with --yes to confirm", storeName)
	}

	store, err := datastore.FromSettings(settings, storeName)
	if err != nil {
		return err
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open %s store: %w", storeName, err)
	}
	defer store.Close()

	if err := store.ClearAll(); err != nil {
		return err
	}

	fmt.Printf("Cleared the %s store\n", storeName)
	return nil
}
