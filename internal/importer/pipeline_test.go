package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carnetapp/carnet-go/internal/datastore"
	"github.com/carnetapp/carnet-go/internal/errors"
)

func createStore(t *testing.T) datastore.Interface {
	t.Helper()
	store := datastore.New(datastore.StoreMain, t.TempDir()+"/test.db")
	require.NoError(t, store.Open(), "Failed to open database")
	t.Cleanup(func() {
		assert.NoError(t, store.Close(), "Failed to close store")
	})
	return store
}

func TestRunRejectsMalformedJSONBeforeClearing(t *testing.T) {
	store := createStore(t)

	_, err := store.Create(&datastore.Client{Nom: "Existing", Page: 1, DateAjout: "01/01/2026"})
	require.NoError(t, err)

	_, err = Run(store, []byte(`{"clients": [`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedInput)

	count, err := store.CountClients()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "malformed input must abort before any destructive action")
}

func TestRunEmptyPayloadIsNoOp(t *testing.T) {
	store := createStore(t)

	result, err := Run(store, []byte(`[]`))
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.NotEmpty(t, result.BatchID)
}

func TestRunFullReplaceIsIdempotent(t *testing.T) {
	store := createStore(t)
	payload := []byte(`[{"nom":"Amel","page":3}]`)

	for i := 0; i < 2; i++ {
		result, err := Run(store, payload)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 0, result.Skipped)

		count, err := store.CountClients()
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	}
}

func TestRunPartialBatchResilience(t *testing.T) {
	store := createStore(t)
	payload := []byte(`[
		{"nom":"Amel","page":3},
		{"nom":"","page":4},
		{"nom":"Karim","page":5}
	]`)

	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	clients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Amel", clients[0].Nom)
	assert.Equal(t, "Karim", clients[1].Nom)
}

func TestRunSkipsNonNumericPage(t *testing.T) {
	store := createStore(t)
	payload := []byte(`[{"nom":"Amel","page":"not a number"}]`)

	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}

func TestRunEmptyStringPageImportsAsZero(t *testing.T) {
	store := createStore(t)
	payload := []byte(`[{"nom":"Amel","page":""}]`)

	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped, "an empty page string coerces to zero, it is not a skip")

	clients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, 0, clients[0].Page)
}

func TestCloseLoggerAfterRun(t *testing.T) {
	store := createStore(t)

	_, err := Run(store, []byte(`[{"nom":"Amel","page":3}]`))
	require.NoError(t, err)

	// Closing releases the rotating log writer; repeated closes stay safe.
	assert.NoError(t, CloseLogger())
	assert.NoError(t, CloseLogger())
}

func TestRunDuplicatePageWithinBatch(t *testing.T) {
	store := createStore(t)
	payload := []byte(`[
		{"nom":"Amel","page":3},
		{"nom":"Karim","page":3}
	]`)

	// The first candidate wins; the second fails creation after the clear
	// already ran and is counted, not silently lost.
	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	clients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Amel", clients[0].Nom)
}

func TestRunEndToEndScenario(t *testing.T) {
	fixed := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	pinNow(t, fixed)

	store := createStore(t)
	payload := []byte(`[{"nom":"Amel","page":3,"montantTotal":"500","telephones":["0551234567"]}]`)

	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	clients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	got := clients[0]
	assert.Equal(t, "Amel", got.Nom)
	assert.Equal(t, 3, got.Page)
	assert.InDelta(t, 500, got.MontantTotal, 0)
	assert.InDelta(t, 0, got.MontantRestant, 0)
	assert.False(t, got.Statut)
	require.Len(t, got.Telephones, 1)
	assert.Equal(t, "0551234567", got.Telephones[0].Numero)
	assert.Empty(t, got.Frais)
	assert.Equal(t, "31/08/2026", got.DateAjout)
}

func TestRunUsesProvidedDateAndSynonymKey(t *testing.T) {
	fixed := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	pinNow(t, fixed)

	store := createStore(t)
	payload := []byte(`[
		{"nom":"Amel","page":3,"dateAjout":"15/06/2025"},
		{"nom":"Karim","page":4,"dateAdded":"16/06/2025"},
		{"nom":"Lina","page":5}
	]`)

	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)

	clients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "15/06/2025", clients[0].DateAjout)
	assert.Equal(t, "16/06/2025", clients[1].DateAjout, "dateAdded is a tolerated synonym")
	assert.Equal(t, "31/08/2026", clients[2].DateAjout, "missing date falls back to today")
}

func TestRunDropsInvalidFeesAndEmptyPhones(t *testing.T) {
	store := createStore(t)
	payload := []byte(`[{
		"nom":"Amel","page":3,
		"frais":[{"type":"livraison","montant":"50"},{"type":"  ","montant":10},{"montant":5}],
		"telephones":["0551234567","  ",""]
	}]`)

	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped, "bad fees drop individually, the record survives")

	clients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	require.Len(t, clients[0].Frais, 1)
	assert.Equal(t, "livraison", clients[0].Frais[0].Type)
	assert.InDelta(t, 50, clients[0].Frais[0].Montant, 0)
	require.Len(t, clients[0].Telephones, 1)
}

func TestRunNormalizesStatusVariants(t *testing.T) {
	store := createStore(t)
	payload := []byte(`[
		{"nom":"Amel","page":3,"statut":"Terminée"},
		{"nom":"Karim","page":4,"statut":"EN COURS"},
		{"nom":"Lina","page":5,"statut":1}
	]`)

	result, err := Run(store, payload)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)

	clients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.True(t, clients[0].Statut)
	assert.False(t, clients[1].Statut)
	assert.True(t, clients[2].Statut)
}

func TestRunWholeObjectPayload(t *testing.T) {
	store := createStore(t)

	result, err := Run(store, []byte(`{"nom":"Amel","page":3}`))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}
