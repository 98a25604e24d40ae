// interfaces.go: this code defines the interface for the store operations
package datastore

import (
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/errors"
)

// Store names. Exactly two named instances exist: the active store and the
// archive store.
const (
	StoreMain    = "main"
	StoreArchive = "archive"
)

// Interface abstracts one named embedded store and defines the operations the
// import pipeline, export serializer and cross-store transfer drive.
type Interface interface {
	Open() error
	Close() error
	Name() string
	LoadAll() ([]Client, error)
	Create(client *Client) (uint, error)
	Update(id uint, client *Client) error
	Delete(id uint) error
	ToggleCompletion(id uint, statut bool) error
	ClearAll() error
	FindDuplicate(nom string, page int) (bool, error)
	CountClients() (int64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB   *gorm.DB // GORM database instance
	name string   // store name, "main" or "archive"
}

// New creates a store bound to a name and a SQLite file path. The store is not
// opened; call Open before use.
func New(name, path string) Interface {
	return &SQLiteStore{
		DataStore: DataStore{name: name},
		path:      path,
	}
}

// FromSettings creates the store for the given name using the configured
// file paths.
func FromSettings(settings *conf.Settings, name string) (Interface, error) {
	switch name {
	case StoreMain:
		return New(StoreMain, settings.Main.Path), nil
	case StoreArchive:
		return New(StoreArchive, settings.Archive.Path), nil
	default:
		return nil, fmt.Errorf("unknown store %q, expected %q or %q", name, StoreMain, StoreArchive)
	}
}

// Name returns the store name the instance was bound to at construction.
func (ds *DataStore) Name() string {
	return ds.name
}

// LoadAll returns every client in the store, fully hydrated with its fee and
// phone collections, ordered by page number ascending.
func (ds *DataStore) LoadAll() ([]Client, error) {
	var clients []Client
	err := ds.DB.
		Preload("Frais").
		Preload("Telephones").
		Order("page ASC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("loading clients from %s store: %w", ds.name, err)
	}
	return clients, nil
}

// Create inserts the scalar attributes, obtains the newly assigned identifier,
// then inserts all fee and phone children tagged with that identifier. The
// whole insert runs in one transaction.
func (ds *DataStore) Create(client *Client) (uint, error) {
	var newID uint
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		client.ID = 0
		if err := tx.Omit(clause.Associations).Create(client).Error; err != nil {
			return ds.translate(err, "saving client")
		}
		if client.ID == 0 {
			return errors.New(errors.ErrInvalidInsertResult).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Context("store", ds.name).
				Context("operation", "create").
				Build()
		}
		for i := range client.Frais {
			client.Frais[i].ID = 0
			client.Frais[i].ClientID = client.ID
			if err := tx.Create(&client.Frais[i]).Error; err != nil {
				return fmt.Errorf("saving fee: %w", err)
			}
		}
		for i := range client.Telephones {
			client.Telephones[i].ID = 0
			client.Telephones[i].ClientID = client.ID
			if err := tx.Create(&client.Telephones[i]).Error; err != nil {
				return fmt.Errorf("saving phone: %w", err)
			}
		}
		newID = client.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// Update replaces all scalar attributes for the given identifier, then fully
// deletes and reinserts both child collections. No diffing is attempted.
func (ds *DataStore) Update(id uint, client *Client) error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		var existing Client
		if err := tx.First(&existing, id).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.ErrNotFound).
					Component("datastore").
					Category(errors.CategoryNotFound).
					Context("store", ds.name).
					Context("client_id", id).
					Build()
			}
			return fmt.Errorf("looking up client %d: %w", id, err)
		}

		scalars := map[string]any{
			"nom":             client.Nom,
			"page":            client.Page,
			"note":            client.Note,
			"montant_total":   client.MontantTotal,
			"montant_restant": client.MontantRestant,
			"date_ajout":      client.DateAjout,
			"statut":          client.Statut,
		}
		if err := tx.Model(&Client{}).Where("id = ?", id).Updates(scalars).Error; err != nil {
			return ds.translate(err, "updating client")
		}

		if err := tx.Where("client_id = ?", id).Delete(&Fee{}).Error; err != nil {
			return fmt.Errorf("deleting fees for client %d: %w", id, err)
		}
		if err := tx.Where("client_id = ?", id).Delete(&Phone{}).Error; err != nil {
			return fmt.Errorf("deleting phones for client %d: %w", id, err)
		}
		for i := range client.Frais {
			fee := Fee{ClientID: id, Type: client.Frais[i].Type, Montant: client.Frais[i].Montant}
			if err := tx.Create(&fee).Error; err != nil {
				return fmt.Errorf("saving fee: %w", err)
			}
		}
		for i := range client.Telephones {
			phone := Phone{ClientID: id, Numero: client.Telephones[i].Numero}
			if err := tx.Create(&phone).Error; err != nil {
				return fmt.Errorf("saving phone: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a client and its child rows. Deleting an absent identifier
// is a no-op.
func (ds *DataStore) Delete(id uint) error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&Fee{}).Error; err != nil {
			return fmt.Errorf("deleting fees for client %d: %w", id, err)
		}
		if err := tx.Where("client_id = ?", id).Delete(&Phone{}).Error; err != nil {
			return fmt.Errorf("deleting phones for client %d: %w", id, err)
		}
		if err := tx.Delete(&Client{}, id).Error; err != nil {
			return fmt.Errorf("deleting client %d: %w", id, err)
		}
		return nil
	})
}

// ToggleCompletion updates only the completion flag of the given client.
func (ds *DataStore) ToggleCompletion(id uint, statut bool) error {
	result := ds.DB.Model(&Client{}).Where("id = ?", id).Update("statut", statut)
	if result.Error != nil {
		return fmt.Errorf("updating completion flag for client %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrNotFound).
			Component("datastore").
			Category(errors.CategoryNotFound).
			Context("store", ds.name).
			Context("client_id", id).
			Build()
	}
	return nil
}

// ClearAll deletes every fee row, then every phone row, then every client row.
// Child-before-parent ordering keeps the foreign key discipline intact even on
// backends that enforce it strictly. Used as the destructive first step of a
// full-replace import.
func (ds *DataStore) ClearAll() error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM frais").Error; err != nil {
			return fmt.Errorf("clearing fees in %s store: %w", ds.name, err)
		}
		if err := tx.Exec("DELETE FROM telephones").Error; err != nil {
			return fmt.Errorf("clearing phones in %s store: %w", ds.name, err)
		}
		if err := tx.Exec("DELETE FROM clients").Error; err != nil {
			return fmt.Errorf("clearing clients in %s store: %w", ds.name, err)
		}
		return nil
	})
}

// FindDuplicate reports whether any client in this store already has this name
// or this page. Read-only; used by Transfer before writing to a destination.
func (ds *DataStore) FindDuplicate(nom string, page int) (bool, error) {
	var count int64
	err := ds.DB.Model(&Client{}).
		Where("nom = ? OR page = ?", nom, page).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking duplicates in %s store: %w", ds.name, err)
	}
	return count > 0, nil
}

// CountClients returns the number of client rows in the store.
func (ds *DataStore) CountClients() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Client{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting clients in %s store: %w", ds.name, err)
	}
	return count, nil
}

// translate maps driver-level unique violations onto the constraint sentinel
// so callers can match with errors.Is regardless of backend wording.
func (ds *DataStore) translate(err error, op string) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.New(fmt.Errorf("%w: %w", errors.ErrConstraintViolation, err)).
			Component("datastore").
			Category(errors.CategoryConflict).
			Context("store", ds.name).
			Context("operation", op).
			Build()
	}
	return fmt.Errorf("%s: %w", op, err)
}
