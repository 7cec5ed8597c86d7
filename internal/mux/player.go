package mux

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"chipmaster-server/internal/config"
	"chipmaster-server/internal/jwt"
	"chipmaster-server/internal/util"
	"chipmaster-server/pkg/model"
)

type playerPayload struct {
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
}

type playerResponse struct {
	JWT     string         `json:"jwt"`
	Profile *model.Profile `json:"profile"`
}

var validDisplayNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{0,40}\z`)

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp playerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if err := m.recaptcha.Verify(pp.Token); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if !validDisplayNameRx.MatchString(pp.DisplayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		addr := remoteAddr(r)
		at, err := model.LastProfileCreatedAt(r.Context(), addr)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		playerCreateDelay := time.Second * time.Duration(config.Instance().PlayerCreateDelay)
		if time.Since(at) < playerCreateDelay {
			writeJSONError(w, http.StatusBadRequest, errors.New("please wait before creating another player"))
			return
		}

		displayName := pp.DisplayName
		if displayName == "" {
			displayName = util.GetRandomName()
		}

		profile, err := model.CreateProfile(r.Context(), displayName, addr)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		signed, err := jwt.Sign(profile.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, playerResponse{
			JWT:     signed,
			Profile: profile,
		})
	}
}
