package room

import (
	"context"
	"os"
	"testing"

	"chipmaster-server/pkg/db"
	"chipmaster-server/pkg/game"

	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

func requireDatabase(t *testing.T) {
	t.Helper()

	if os.Getenv("CM_PG_DSN") == "" {
		t.Skip("CM_PG_DSN is not set")
	}

	db.Migrate()
}

func TestCreateAndFetchRoom(t *testing.T) {
	requireDatabase(t)

	state, err := CreateRoom(cbg, "owner-1", "Owner", 1000, "")
	assert.NoError(t, err)
	assert.Len(t, state.RoomID, 6)
	assert.Equal(t, game.StatusSetup, state.Status)

	defer func() { _ = DeleteRoom(cbg, state.RoomID) }()

	fetched, err := FetchState(cbg, state.RoomID)
	assert.NoError(t, err)
	assert.Equal(t, state.RoomID, fetched.RoomID)
	assert.Equal(t, 1000, fetched.InitialChips)
	assert.Len(t, fetched.Players, 1)
}

func TestFetchState_NotFound(t *testing.T) {
	requireDatabase(t)

	state, err := FetchState(cbg, "ZZZZZZ")
	assert.Equal(t, ErrRoomNotFound, err)
	assert.Nil(t, state)
}

func TestSaveState_RejectsStaleWrite(t *testing.T) {
	requireDatabase(t)

	state, err := CreateRoom(cbg, "owner-1", "Owner", 1000, "")
	assert.NoError(t, err)
	defer func() { _ = DeleteRoom(cbg, state.RoomID) }()

	next, err := state.Join("p2", "Player Two")
	assert.NoError(t, err)
	assert.NoError(t, SaveState(cbg, next))

	// a write carrying an older version must lose
	assert.Equal(t, ErrStaleWrite, SaveState(cbg, state))
}

func TestUpdateState(t *testing.T) {
	requireDatabase(t)

	state, err := CreateRoom(cbg, "owner-1", "Owner", 1000, "")
	assert.NoError(t, err)
	defer func() { _ = DeleteRoom(cbg, state.RoomID) }()

	updated, err := UpdateState(cbg, state.RoomID, func(s *game.GameState) (*game.GameState, error) {
		return s.Join("p2", "Player Two")
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Players, 2)

	fetched, err := FetchState(cbg, state.RoomID)
	assert.NoError(t, err)
	assert.Len(t, fetched.Players, 2)

	// a failed transition must not write
	_, err = UpdateState(cbg, state.RoomID, func(s *game.GameState) (*game.GameState, error) {
		return s.Start("p2", game.DefaultBigBlind)
	})
	assert.NotNil(t, err)
}

func TestDeleteRoom(t *testing.T) {
	requireDatabase(t)

	state, err := CreateRoom(cbg, "owner-1", "Owner", 1000, "")
	assert.NoError(t, err)

	assert.NoError(t, DeleteRoom(cbg, state.RoomID))
	assert.Equal(t, ErrRoomNotFound, DeleteRoom(cbg, state.RoomID))
}
