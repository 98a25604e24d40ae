package datastore

import (
	"fmt"

	"github.com/carnetapp/carnet-go/internal/errors"
)

// Transfer moves one client (with its child rows) from src to dst using the
// provided snapshot's values, not a re-read from src. Sequence: ensure the
// destination schema, check the destination for a name or page duplicate,
// insert into the destination, and only then delete from the source.
//
// The destination write is the validation-sensitive step, so it runs before
// the irreversible source delete; a rejected transfer leaves the source
// untouched. This is not a cross-store atomic transaction: if the process
// dies between the destination insert and the source delete, the client
// transiently exists in both stores. Callers can detect that state on
// startup with FindDuplicate against both stores and reconcile.
func Transfer(src, dst Interface, id uint, snapshot *Client) error {
	if err := dst.Open(); err != nil {
		return fmt.Errorf("opening destination store %s: %w", dst.Name(), err)
	}

	dup, err := dst.FindDuplicate(snapshot.Nom, snapshot.Page)
	if err != nil {
		return fmt.Errorf("checking destination store %s: %w", dst.Name(), err)
	}
	if dup {
		return errors.New(errors.ErrDuplicateInDestination).
			Component("datastore").
			Category(errors.CategoryTransfer).
			Context("source", src.Name()).
			Context("destination", dst.Name()).
			Context("nom", snapshot.Nom).
			Context("page", snapshot.Page).
			Build()
	}

	clone := cloneForInsert(snapshot)
	newID, err := dst.Create(clone)
	if err != nil {
		return fmt.Errorf("inserting into destination store %s: %w", dst.Name(), err)
	}

	if err := src.Delete(id); err != nil {
		// Destination insert already succeeded; surface the window explicitly.
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryTransfer).
			Context("source", src.Name()).
			Context("destination", dst.Name()).
			Context("source_id", id).
			Context("destination_id", newID).
			Context("operation", "delete_source_after_transfer").
			Build()
	}

	getLogger().Info("Client transferred between stores",
		"source", src.Name(),
		"destination", dst.Name(),
		"source_id", id,
		"destination_id", newID,
		"nom", snapshot.Nom)
	return nil
}

// cloneForInsert strips store-assigned identifiers so the destination store
// assigns fresh ones.
func cloneForInsert(snapshot *Client) *Client {
	clone := &Client{
		Nom:            snapshot.Nom,
		Page:           snapshot.Page,
		Note:           snapshot.Note,
		MontantTotal:   snapshot.MontantTotal,
		MontantRestant: snapshot.MontantRestant,
		DateAjout:      snapshot.DateAjout,
		Statut:         snapshot.Statut,
	}
	for i := range snapshot.Frais {
		clone.Frais = append(clone.Frais, Fee{
			Type:    snapshot.Frais[i].Type,
			Montant: snapshot.Frais[i].Montant,
		})
	}
	for i := range snapshot.Telephones {
		clone.Telephones = append(clone.Telephones, Phone{
			Numero: snapshot.Telephones[i].Numero,
		})
	}
	return clone
}
