// Package export flattens a store's record set into the JSON interchange shape.
package export

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/carnetapp/carnet-go/internal/datastore"
)

// timeNow is swapped out in tests that pin the export timestamp.
var timeNow = time.Now

// Payload is the export file shape.
type Payload struct {
	ExportedAt string         `json:"exportedAt"`
	Total      int            `json:"total"`
	Clients    []ClientRecord `json:"clients"`
}

// ClientRecord carries all scalar fields of one client plus its children
// flattened to bare values. Child identifiers are never exposed.
type ClientRecord struct {
	Nom            string      `json:"nom"`
	Page           int         `json:"page"`
	Note           string      `json:"note"`
	MontantTotal   float64     `json:"montantTotal"`
	MontantRestant float64     `json:"montantRestant"`
	DateAjout      string      `json:"dateAjout"`
	Statut         bool        `json:"statut"`
	Telephones     []string    `json:"telephones"`
	Frais          []FeeRecord `json:"frais"`
}

// FeeRecord is one fee line item in the interchange shape.
type FeeRecord struct {
	Type    string  `json:"type"`
	Montant float64 `json:"montant"`
}

// Snapshot produces the export payload for the given record set. It is a pure
// transform: no filtering, no validation, total over whatever was loaded.
func Snapshot(clients []datastore.Client) Payload {
	payload := Payload{
		ExportedAt: timeNow().Format(time.RFC3339),
		Total:      len(clients),
		Clients:    make([]ClientRecord, 0, len(clients)),
	}
	for i := range clients {
		payload.Clients = append(payload.Clients, flatten(&clients[i]))
	}
	return payload
}

func flatten(client *datastore.Client) ClientRecord {
	record := ClientRecord{
		Nom:            client.Nom,
		Page:           client.Page,
		Note:           client.Note,
		MontantTotal:   client.MontantTotal,
		MontantRestant: client.MontantRestant,
		DateAjout:      client.DateAjout,
		Statut:         client.Statut,
		Telephones:     make([]string, 0, len(client.Telephones)),
		Frais:          make([]FeeRecord, 0, len(client.Frais)),
	}
	for i := range client.Telephones {
		record.Telephones = append(record.Telephones, client.Telephones[i].Numero)
	}
	for i := range client.Frais {
		record.Frais = append(record.Frais, FeeRecord{
			Type:    client.Frais[i].Type,
			Montant: client.Frais[i].Montant,
		})
	}
	return record
}

// FileName builds the deterministic export filename
// clients-YYYY-MM-DD_HH-MM-SS.json for the given timestamp.
func FileName(t time.Time) string {
	return fmt.Sprintf("clients-%04d-%02d-%02d_%02d-%02d-%02d.json",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// currencyPrinter applies French-locale thousands separators.
var currencyPrinter = message.NewPrinter(language.French)

// FormatCurrency rounds an amount to the nearest integer and renders it with
// locale separators and the fixed currency suffix. Presentation-only; export
// payloads carry the raw numeric fields.
func FormatCurrency(amount float64) string {
	return currencyPrinter.Sprintf("%d DA", int64(math.Round(amount)))
}
