package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jindonglee/resume-board/pkg/health"
	pkgmiddleware "github.com/Jindonglee/resume-board/pkg/middleware"
)

// RouterConfig bundles the dependencies of the HTTP surface.
type RouterConfig struct {
	UserHandler *UserHandler
	PostHandler *PostHandler
	AuthGate    *AuthGate
	Health      *health.Handler
	Logger      *slog.Logger
	LoginRPS    int
	LoginBurst  int
}

// NewRouter assembles the full route tree with middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(pkgmiddleware.Recovery(cfg.Logger))
	r.Use(pkgmiddleware.RequestLogging(cfg.Logger))
	r.Use(pkgmiddleware.PrometheusMetrics("resume-board"))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/sign-up", cfg.UserHandler.SignUp)

		r.Group(func(r chi.Router) {
			r.Use(pkgmiddleware.RateLimit(cfg.LoginRPS, cfg.LoginBurst, cfg.Logger))
			r.Post("/login", cfg.UserHandler.Login)
		})

		r.Get("/posts", cfg.PostHandler.ListPosts)
		r.Get("/posts/{postId}", cfg.PostHandler.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthGate.Handler)
			r.Get("/userInfo", cfg.UserHandler.UserInfo)
			r.Post("/logout", cfg.UserHandler.Logout)
			r.Post("/posts", cfg.PostHandler.CreatePost)
			r.Patch("/posts/{postId}", cfg.PostHandler.UpdatePost)
			r.Delete("/posts/{postId}", cfg.PostHandler.DeletePost)
		})
	})

	return r
}
