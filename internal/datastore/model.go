// model.go this code defines the data model for the client stores
package datastore

// Client represents a single client record with its dependent child rows.
// Both stores ("main" and "archive") share this schema.
type Client struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Nom            string  `gorm:"uniqueIndex:idx_clients_nom;not null" json:"nom"`
	Page           int     `gorm:"uniqueIndex:idx_clients_page;not null" json:"page"`
	Note           string  `json:"note"`
	MontantTotal   float64 `gorm:"default:0" json:"montantTotal"`
	MontantRestant float64 `gorm:"default:0" json:"montantRestant"`
	DateAjout      string  `gorm:"not null" json:"dateAjout"` // canonical "DD/MM/YYYY"
	Statut         bool    `gorm:"not null;default:false" json:"statut"`
	Frais          []Fee   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"frais"`
	Telephones     []Phone `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"telephones"`
}

// Fee represents a single fee line item attached to a client.
type Fee struct {
	ID       uint    `gorm:"primaryKey" json:"-"`
	ClientID uint    `gorm:"index:idx_frais_client_id;not null" json:"-"`
	Type     string  `json:"type"`
	Montant  float64 `gorm:"default:0" json:"montant"`
}

// Phone represents a single phone number attached to a client.
type Phone struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	ClientID uint   `gorm:"index:idx_telephones_client_id;not null" json:"-"`
	Numero   string `json:"numero"`
}

// TableName overrides the default pluralization, the on-disk schema uses the
// French table names of the interchange format.
func (Fee) TableName() string { return "frais" }

// TableName keeps the phones relation aligned with the interchange format.
func (Phone) TableName() string { return "telephones" }
