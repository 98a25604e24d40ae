package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/carnetapp/carnet-go/internal/datastore"
	"github.com/carnetapp/carnet-go/internal/errors"
	"github.com/carnetapp/carnet-go/internal/logging"
)

// Result reports the per-record outcome bookkeeping of one import run.
type Result struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	BatchID  string `json:"batchId"`
}

var (
	importLogger    *slog.Logger
	importLevelVar  = new(slog.LevelVar) // Dynamic level control
	importCloseFunc func() error
	importOnce      sync.Once
)

func getLogger() *slog.Logger {
	importOnce.Do(func() {
		importLevelVar.Set(slog.LevelInfo)

		var err error
		importLogger, importCloseFunc, err = logging.NewFileLogger("logs/importer.log", "importer", importLevelVar)
		if err != nil {
			importLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
			importCloseFunc = func() error { return nil }
		}
	})
	return importLogger
}

// CloseLogger closes the importer logger
func CloseLogger() error {
	if importCloseFunc != nil {
		return importCloseFunc()
	}
	return nil
}

// SetLogLevel sets the log level for the importer logger
func SetLogLevel(level slog.Level) {
	importLevelVar.Set(level)
}

// Run parses raw JSON bytes and performs a full-replace import into store.
// Invalid JSON aborts with ErrMalformedInput strictly before any destructive
// action. Run must only be called after the caller has obtained explicit
// confirmation; the pipeline itself carries no confirmation gate.
func Run(store datastore.Interface, data []byte) (Result, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, errors.New(fmt.Errorf("%w: %w", errors.ErrMalformedInput, err)).
			Component("importer").
			Category(errors.CategoryImport).
			Context("operation", "parse_payload").
			Build()
	}
	return RunParsed(store, raw)
}

// RunParsed performs a full-replace import of already-parsed JSON into store.
// Candidates are resolved and validated first; only then is the store cleared
// and reloaded. A candidate without a usable name or page, or one whose
// creation fails after the clear (for example a page collision inside the
// batch), is counted as skipped and never aborts the rest of the batch.
func RunParsed(store datastore.Interface, raw any) (Result, error) {
	result := Result{BatchID: uuid.New().String()}
	log := getLogger().With("batch_id", result.BatchID, "store", store.Name())

	candidates := ResolveShape(raw)
	if len(candidates) == 0 {
		log.Info("Import resolved no candidates, nothing to do")
		return result, nil
	}

	clients := make([]*datastore.Client, 0, len(candidates))
	for i, candidate := range candidates {
		client, reason := buildClient(candidate)
		if client == nil {
			result.Skipped++
			log.Warn("Import candidate skipped",
				"index", i,
				"reason", reason)
			continue
		}
		clients = append(clients, client)
	}

	if err := store.Open(); err != nil {
		return result, fmt.Errorf("opening %s store for import: %w", store.Name(), err)
	}
	if err := store.ClearAll(); err != nil {
		return result, fmt.Errorf("clearing %s store for import: %w", store.Name(), err)
	}

	for _, client := range clients {
		if _, err := store.Create(client); err != nil {
			result.Skipped++
			log.Warn("Import candidate skipped",
				"nom", client.Nom,
				"page", client.Page,
				"reason", "create failed",
				"error", err)
			continue
		}
		result.Imported++
	}

	log.Info("Import completed",
		"imported", result.Imported,
		"skipped", result.Skipped)
	return result, nil
}

// buildClient normalizes one candidate into a full client payload, or returns
// nil with a skip reason when the candidate lacks a usable name or page.
func buildClient(candidate any) (*datastore.Client, string) {
	fields, ok := candidate.(map[string]any)
	if !ok {
		return nil, "not an object"
	}

	nom := strings.TrimSpace(NormalizeString(fields["nom"]))
	if nom == "" {
		return nil, "empty name"
	}
	page, ok := toNumber(fields["page"])
	if !ok || math.IsNaN(page) {
		return nil, "invalid page"
	}

	client := &datastore.Client{
		Nom:            nom,
		Page:           int(page),
		Note:           NormalizeString(fields["note"]),
		MontantTotal:   NormalizeAmount(fields["montantTotal"]),
		MontantRestant: NormalizeAmount(fields["montantRestant"]),
		Statut:         NormalizeStatus(fields["statut"]),
		DateAjout:      FormatDateForStorage(candidateDate(fields)),
		Frais:          buildFees(fields["frais"]),
		Telephones:     buildPhones(fields["telephones"]),
	}
	return client, ""
}

// candidateDate returns the candidate's own date string when provided, with
// "dateAdded" tolerated as an alternate key. An empty return means the date
// formatter falls back to today, which is the required behavior.
func candidateDate(fields map[string]any) string {
	if date := NormalizeString(fields["dateAjout"]); date != "" {
		return date
	}
	return NormalizeString(fields["dateAdded"])
}

// buildFees keeps only fees with a non-empty type after trimming; fees failing
// this are dropped individually, never the whole record.
func buildFees(value any) []datastore.Fee {
	arr, ok := value.([]any)
	if !ok {
		return nil
	}
	var fees []datastore.Fee
	for _, item := range arr {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		feeType := strings.TrimSpace(NormalizeString(fields["type"]))
		if feeType == "" {
			continue
		}
		fees = append(fees, datastore.Fee{
			Type:    feeType,
			Montant: NormalizeAmount(fields["montant"]),
		})
	}
	return fees
}

// buildPhones reduces phone entries to non-empty trimmed strings.
func buildPhones(value any) []datastore.Phone {
	arr, ok := value.([]any)
	if !ok {
		return nil
	}
	var phones []datastore.Phone
	for _, item := range arr {
		numero := strings.TrimSpace(NormalizeString(item))
		if numero == "" {
			continue
		}
		phones = append(phones, datastore.Phone{Numero: numero})
	}
	return phones
}
