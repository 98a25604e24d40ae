package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carnetapp/carnet-go/internal/errors"
)

func TestTransferMovesRecordWithChildren(t *testing.T) {
	src := createDatabase(t, StoreMain)
	dst := createDatabase(t, StoreArchive)

	id, err := src.Create(testClient())
	require.NoError(t, err)

	clients, err := src.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	require.NoError(t, Transfer(src, dst, id, &clients[0]))

	srcCount, err := src.CountClients()
	require.NoError(t, err)
	assert.Zero(t, srcCount, "source must not retain the record after transfer")

	moved, err := dst.LoadAll()
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, "Amel", moved[0].Nom)
	assert.Equal(t, 3, moved[0].Page)
	assert.Len(t, moved[0].Frais, 2)
	assert.Len(t, moved[0].Telephones, 1)
}

func TestTransferRejectsDuplicateInDestination(t *testing.T) {
	src := createDatabase(t, StoreMain)
	dst := createDatabase(t, StoreArchive)

	id, err := src.Create(testClient())
	require.NoError(t, err)

	// Destination already holds a record with the same name.
	blocker := testClient()
	blocker.Page = 42
	_, err = dst.Create(blocker)
	require.NoError(t, err)

	clients, err := src.LoadAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	err = Transfer(src, dst, id, &clients[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateInDestination)

	// Source record count and the specific record are unchanged.
	after, err := src.LoadAll()
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, clients[0].ID, after[0].ID)
	assert.Equal(t, clients[0].Nom, after[0].Nom)

	dstCount, err := dst.CountClients()
	require.NoError(t, err)
	assert.EqualValues(t, 1, dstCount, "no writes may reach the destination on rejection")
}

func TestTransferAssignsFreshDestinationIdentifier(t *testing.T) {
	src := createDatabase(t, StoreMain)
	dst := createDatabase(t, StoreArchive)

	// Burn an identifier in the destination so ids diverge between stores.
	burner := testClient()
	burner.Nom = "Burner"
	burner.Page = 50
	burnID, err := dst.Create(burner)
	require.NoError(t, err)
	require.NoError(t, dst.Delete(burnID))

	id, err := src.Create(testClient())
	require.NoError(t, err)

	clients, err := src.LoadAll()
	require.NoError(t, err)
	require.NoError(t, Transfer(src, dst, id, &clients[0]))

	moved, err := dst.LoadAll()
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.NotZero(t, moved[0].ID)
}
