package room

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"chipmaster-server/pkg/db"
	"chipmaster-server/pkg/game"
	"chipmaster-server/pkg/token"

	"github.com/lib/pq"
)

// ErrRoomNotFound is returned when no room exists for a code
var ErrRoomNotFound = errors.New("room not found")

// ErrStaleWrite is returned when a snapshot loses the race against a newer
// version already in the store
var ErrStaleWrite = errors.New("a newer snapshot was already saved")

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// createRoomAttempts bounds the room-code retry loop on collisions
const createRoomAttempts = 5

// updateRetries bounds the optimistic-concurrency retry loop
const updateRetries = 3

// CreateRoom seeds a new room for the owner and persists it under a freshly
// generated code, retrying on the unlikely code collision
func CreateRoom(ctx context.Context, ownerID, ownerName string, initialChips int, passwordHash string) (*game.GameState, error) {
	const query = `
INSERT INTO rooms (code, state, version)
VALUES ($1, $2, $3)`

	for i := 0; i < createRoomAttempts; i++ {
		code, err := token.RoomCode()
		if err != nil {
			return nil, err
		}

		state := game.New(code, ownerID, ownerName, initialChips, passwordHash)
		encoded, err := json.Marshal(state)
		if err != nil {
			return nil, err
		}

		if _, err := db.Instance().ExecContext(ctx, query, code, encoded, state.Version); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
				continue
			}

			return nil, err
		}

		return state, nil
	}

	return nil, errors.New("could not find a free room code")
}

// SaveState upserts a snapshot keyed by its room code. A write whose version
// does not exceed the stored version is rejected with ErrStaleWrite.
func SaveState(ctx context.Context, state *game.GameState) error {
	const query = `
INSERT INTO rooms (code, state, version, updated)
VALUES ($1, $2, $3, (NOW() AT TIME ZONE 'utc'))
ON CONFLICT (code) DO UPDATE
    SET state   = EXCLUDED.state,
        version = EXCLUDED.version,
        updated = EXCLUDED.updated
    WHERE rooms.version < EXCLUDED.version`

	encoded, err := json.Marshal(state)
	if err != nil {
		return err
	}

	result, err := db.Instance().ExecContext(ctx, query, state.RoomID, encoded, state.Version)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStaleWrite
	}

	return nil
}

// FetchState returns the latest snapshot for a room code
func FetchState(ctx context.Context, code string) (*game.GameState, error) {
	const query = `
SELECT state
FROM rooms
WHERE code = $1`

	var encoded []byte
	if err := db.Instance().QueryRowContext(ctx, query, token.Normalize(code)).Scan(&encoded); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}

		return nil, err
	}

	var state game.GameState
	if err := json.Unmarshal(encoded, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

// UpdateState applies a transition to the latest snapshot and saves the
// result, retrying the whole read-transition-write cycle when another writer
// got there first. Transition errors abort immediately and are returned
// as-is so the HTTP layer can classify them.
func UpdateState(ctx context.Context, code string, transition func(*game.GameState) (*game.GameState, error)) (*game.GameState, error) {
	var lastErr error
	for i := 0; i < updateRetries; i++ {
		state, err := FetchState(ctx, code)
		if err != nil {
			return nil, err
		}

		next, err := transition(state)
		if err != nil {
			return nil, err
		}

		// a no-op transition returns the same snapshot; nothing to save
		if next == state {
			return next, nil
		}

		if err := SaveState(ctx, next); err != nil {
			if err == ErrStaleWrite {
				lastErr = err
				continue
			}

			return nil, err
		}

		return next, nil
	}

	return nil, lastErr
}

// DeleteRoom tears a room down
func DeleteRoom(ctx context.Context, code string) error {
	const query = `
DELETE FROM rooms
WHERE code = $1`

	result, err := db.Instance().ExecContext(ctx, query, token.Normalize(code))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// PurgeIdleRooms deletes rooms that were last written before the cutoff and
// returns how many were removed
func PurgeIdleRooms(ctx context.Context, idleFor time.Duration) (int64, error) {
	const query = `
DELETE FROM rooms
WHERE updated < $1`

	cutoff := time.Now().In(time.UTC).Add(-idleFor)
	result, err := db.Instance().ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
