package mux

import (
	"context"
	"net/http"
	"strings"

	"chipmaster-server/internal/jwt"
	"chipmaster-server/pkg/model"
	"chipmaster-server/pkg/room"
	"chipmaster-server/pkg/token"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxProfileKey ctxKey = iota
	ctxStateKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	recaptcha recaptcha
	broker    *room.Broker
	pitBoss   *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
// feed may be nil when the server runs without a remote change listener
func NewMux(version string, feed *room.Feed) *Mux {
	broker := room.NewBroker()
	pitBoss := room.NewPitBoss(broker, feed)
	pitBoss.StartShift()

	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		broker:    broker,
		pitBoss:   pitBoss,
		recaptcha: newRecaptcha(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

		rr := r.PathPrefix("/room/{code:(?i)[a-z0-9]{6}}").Subrouter()
		rr.Use(this.roomMiddleware)

		rr.Methods(http.MethodGet).Path("").Handler(this.getRoomCode())
		rr.Methods(http.MethodPost).Path("/join").Handler(this.postRoomCodeJoin())
		rr.Methods(http.MethodDelete).Path("").Handler(this.deleteRoomCode())
		rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomCodeWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signed := r.FormValue("access_token")
		if signed == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			signed = authHeader[1]
		}

		id, err := jwt.ValidProfileID(signed)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		profile, err := model.GetProfileByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxProfileKey, profile)
		w.Header().Set("ChipMaster-ProfileID", profile.ID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// roomMiddleware requires authMiddleware to execute first
func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := token.Normalize(gmux.Vars(r)["code"])

		state, err := room.FetchState(r.Context(), code)
		if err != nil {
			writeGameError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxStateKey, state)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
