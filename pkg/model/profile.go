package model

import (
	"context"
	"database/sql"
	"time"

	"chipmaster-server/pkg/db"

	"github.com/google/uuid"
)

const profileColumns = `
profiles.id,
profiles.display_name,
profiles.remote_addr,
profiles.created`

// Profile is a guest identity: a stable ID behind a display name. There are
// no credentials; possession of a signed JWT for the ID is the identity.
type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	RemoteAddr  string    `json:"-"`
	Created     time.Time `json:"created"`
}

func getProfileByRow(row db.Scanner) (*Profile, error) {
	var p Profile
	if err := row.Scan(&p.ID, &p.DisplayName, &p.RemoteAddr, &p.Created); err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateProfile creates a new guest profile
func CreateProfile(ctx context.Context, displayName, remoteAddr string) (*Profile, error) {
	const query = `
INSERT INTO profiles (id, display_name, remote_addr)
VALUES ($1, $2, $3)
RETURNING created`

	id := uuid.New().String()
	var created time.Time
	row := db.Instance().QueryRowContext(ctx, query, id, displayName, remoteAddr)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}

	return &Profile{
		ID:          id,
		DisplayName: displayName,
		RemoteAddr:  remoteAddr,
		Created:     created,
	}, nil
}

// GetProfileByID returns the profile with the given ID
func GetProfileByID(ctx context.Context, id string) (*Profile, error) {
	const query = `
SELECT ` + profileColumns + `
FROM profiles
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getProfileByRow(row)
}

// LastProfileCreatedAt returns when the remote address most recently created
// a profile, or the zero time if it never has
func LastProfileCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	const query = `
SELECT MAX(created)
FROM profiles
WHERE remote_addr = $1`

	var created sql.NullTime
	if err := db.Instance().QueryRowContext(ctx, query, remoteAddr).Scan(&created); err != nil {
		return time.Time{}, err
	}

	if !created.Valid {
		return time.Time{}, nil
	}

	return created.Time, nil
}
