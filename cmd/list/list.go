// Package list provides the list command for carnet
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/datastore"
	"github.com/carnetapp/carnet-go/internal/export"
)

// Command creates and returns the list command
func Command(settings *conf.Settings) *cobra.Command {
	var storeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every client in a store, ordered by page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(settings, storeName)
		},
	}
	cmd.Flags().StringVar(&storeName, "store", datastore.StoreMain, "Store to list: main or archive")

	return cmd
}

func runList(settings *conf.Settings, storeName string) error {
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

	status := map[bool]string{false: "en cours", true: "terminé"}
	for i := range clients {
		c := &clients[i]
		fmt.Printf("%4d  p.%-4d %-30s %12s / %-12s %-10s %s\n",
			c.ID, c.Page, c.Nom,
			export.FormatCurrency(c.MontantRestant),
			export.FormatCurrency(c.MontantTotal),
			c.DateAjout, status[c.Statut])
	}
	fmt.Printf("%d client(s) in %s store\n", len(clients), storeName)
	return nil
}
