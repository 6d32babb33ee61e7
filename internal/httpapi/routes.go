package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/draftloop/draft-backend/internal/auth"
	"github.com/draftloop/draft-backend/internal/room"
	"github.com/draftloop/draft-backend/internal/store"
	"github.com/draftloop/draft-backend/internal/ws"
)

func SetupRoutes(rm *room.Room, st *store.Store, au *auth.Service, log *zap.Logger) http.Handler {
	h := &handlers{store: st, log: log}

	r := chi.NewRouter()
	r.Use(au.Middleware)

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(rm, log.Named("ws")))

	r.Route("/auth", func(r chi.Router) {
		r.Get("/discord/login", au.LoginHandler)
		r.Get("/discord/callback", au.CallbackHandler)
		r.Post("/logout", au.LogoutHandler)
		r.Get("/me", au.MeHandler)
	})

	r.Route("/api/boxes", func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/", h.listBoxes)
		r.Post("/", h.createBox)
		r.Get("/{boxID}", h.getBox)
		r.Put("/{boxID}", h.updateBox)
		r.Delete("/{boxID}", h.deleteBox)
	})

	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
