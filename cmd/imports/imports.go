// Package imports provides the import command for carnet
package imports

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/datastore"
	"github.com/carnetapp/carnet-go/internal/importer"
)

// Command creates and returns the import command
func Command(settings *conf.Settings) *cobra.Command {
	var storeName string
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace a store's contents with the records in a JSON file",
		Long: `Import wipes the target store and loads it from the given JSON file.
The file may be a single object, an array, or a wrapper object; records
missing a usable name or page are skipped and counted, not fatal.
This is destructive and requires --yes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(settings, storeName, args[0], confirmed)
		},
	}
	cmd.Flags().StringVar(&storeName, "store", datastore.StoreMain, "Target store: main or archive")
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the destructive full replace")

	return cmd
}

func runImport(settings *conf.Settings, storeName, filePath string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("import replaces the entire %s store; re-run with --yes to confirm", storeName)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	store, err := datastore.FromSettings(settings, storeName)
	if err != nil {
		return err
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open %s store: %w", storeName, err)
	}
	defer store.Close()

	result, err := importer.Run(store, data)
	if err != nil {
		return err
	}

	fmt.Printf("Import completed: %d imported, %d skipped (batch %s)\n",
		result.Imported, result.Skipped, result.BatchID)
	return nil
}
