package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/blog-backend/internal/api/handlers"
	"github.com/baharkarakas/blog-backend/internal/api/httpx"
	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/middleware"
	"github.com/baharkarakas/blog-backend/internal/services"
)

type RouterDeps struct {
	CORSOrigins []string
	AuthSvc     *services.AuthService
	PostSvc     *services.PostService
	Tokens      middleware.TokenVerifier
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	ah := handlers.NewAuthHandler(d.AuthSvc)
	ph := handlers.NewPostHandler(d.PostSvc)
	authMW := middleware.NewAuthMiddleware(d.Tokens)

	r.Route("/api", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/register", ah.Register)
		r.Post("/login", ah.Login)

		// ---------- posts ----------
		r.Route("/post", func(r chi.Router) {
			r.Get("/news", ph.News)
			r.Get("/news/{page}", ph.News)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Auth)
				r.Post("/create", ph.Create)
				r.Put("/edit", ph.Edit)
				r.Delete("/delete", ph.Delete)
			})
		})
	})

	return r
}
