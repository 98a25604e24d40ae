// Package exports provides the export command for carnet
package exports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/datastore"
	"github.com/carnetapp/carnet-go/internal/export"
)

// Command creates and returns the export command
func Command(settings *conf.Settings) *cobra.Command {
	var storeName string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a store's full record set to a JSON export file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = settings.Export.Path
			}
			return runExport(settings, storeName, outDir)
		},
	}
	cmd.Flags().StringVar(&storeName, "store", datastore.StoreMain, "Store to export: main or archive")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (defaults to the configured export path)")

	return cmd
}

func runExport(settings *conf.Settings, storeName, outDir string) error {
	store, err := datastore.FromSettings(settings, storeName)
	if err != nil {
		return err
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open %s store: %w", storeName, err)
	}
	defer store.Close()

	clients, err := store.LoadAll()
	if err != nil {
		return err
	}

	payload := export.Snapshot(clients)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export payload: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	outPath := filepath.Join(outDir, export.FileName(time.Now()))
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Printf("Exported %d client(s) to %s\n", payload.Total, outPath)
	return nil
}
