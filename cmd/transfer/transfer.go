// Package transfer provides the archive/unarchive command for carnet
package transfer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/datastore"
)

// Command creates and returns the transfer command
func Command(settings *conf.Settings) *cobra.Command {
	var fromName string
	var id uint

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move one client between the main and archive stores",
		Long: `Transfer moves a client, with its fees and phone numbers, out of one
store and into the other. The destination is checked for a name or page
duplicate before anything is written; a rejected transfer leaves the
source untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(settings, fromName, id)
		},
	}
	cmd.Flags().StringVar(&fromName, "from", datastore.StoreMain, "Source store: main or archive")
	cmd.Flags().UintVar(&id, "id", 0, "Identifier of the client to move")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runTransfer(settings *conf.Settings, fromName string, id uint) error {
	toName := datastore.StoreArchive
	if fromName == datastore.StoreArchive {
		toName = datastore.StoreMain
	}

	src, err := datastore.FromSettings(settings, fromName)
	if err != nil {
		return err
	}
	dst, err := datastore.FromSettings(settings, toName)
	if err != nil {
		return err
	}
	if err := src.Open(); err != nil {
		return fmt.Errorf("failed to open %s store: %w", fromName, err)
	}
	defer src.Close()
	defer dst.Close()

	snapshot, err := findClient(src, id)
	if err != nil {
		return err
	}

	if err := datastore.Transfer(src, dst, id, snapshot); err != nil {
		return err
	}

	fmt.Printf("Moved %q (page %d) from %s to %s\n", snapshot.Nom, snapshot.Page, fromName, toName)
	return nil
}

func findClient(store datastore.Interface, id uint) (*datastore.Client, error) {
	clients, err := store.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, fmt.Errorf("client %d not found in %s store", id, store.Name())
}
