package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kevinaaaquil/bookshelf/backend/middleware"
	"github.com/kevinaaaquil/bookshelf/backend/service"
	"github.com/kevinaaaquil/bookshelf/backend/session"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Accounts    *service.AccountService
	Collection  *service.CollectionService
	Resolver    *session.Resolver
	Log         logrus.FieldLogger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := &AuthHandler{Accounts: cfg.Accounts, Log: cfg.Log}
	usersHandler := &UsersHandler{Accounts: cfg.Accounts, Collection: cfg.Collection, Log: cfg.Log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Session(cfg.Resolver))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "welcome to bookshelf."})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", usersHandler.Me)
			r.Put("/books", usersHandler.SaveBook)
			r.Delete("/books/{bookId}", usersHandler.RemoveBook)
		})
	})
	return r
}
