package routes

import (
	"net/http"

	"github.com/bagaswara/porto/internal/handlers"
	"github.com/bagaswara/porto/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	Auth         *handlers.AuthHandler
	Contact      *handlers.ContactHandler
	Projects     *handlers.ProjectsHandler
	Experience   *handlers.ExperienceHandler
	Skills       *handlers.SkillsHandler
	Certificates *handlers.CertificatesHandler
	Dashboard    *handlers.DashboardHandler
	Media        *handlers.MediaHandler
}

// RegisterRoutes registers all application routes. The session gate runs as
// a global middleware before this router sees any request, so everything
// under the admin prefix already carries a verified user (login and logout
// excepted).
func RegisterRoutes(
	router chi.Router,
	h Handlers,
	adminPrefix string,
	csrfProtection func(http.Handler) http.Handler,
) {
	// Public content API
	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(middleware.DefaultPublicAPIRateLimit()))
			r.Get("/projects", h.Projects.List)
			r.Get("/projects/{slug}", h.Projects.GetBySlug)
			r.Get("/experience", h.Experience.List)
			r.Get("/skills", h.Skills.ListVisible)
			r.Get("/certificates", h.Certificates.List)
		})

		r.With(middleware.RateLimitByIP(middleware.DefaultContactRateLimit())).
			Post("/contact", h.Contact.Submit)
	})

	// Admin area. The login POST is rate limited by the session gate before
	// it reaches this handler.
	router.Route("/"+adminPrefix, func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(csrfProtection)

			r.Get("/dashboard", h.Dashboard.Stats)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Projects.List)
				r.Post("/", h.Projects.Create)
				r.Get("/{id}", h.Projects.Get)
				r.Put("/{id}", h.Projects.Update)
				r.Delete("/{id}", h.Projects.Delete)
			})

			r.Route("/experience", func(r chi.Router) {
				r.Get("/", h.Experience.List)
				r.Post("/", h.Experience.Create)
				r.Get("/{id}", h.Experience.Get)
				r.Put("/{id}", h.Experience.Update)
				r.Delete("/{id}", h.Experience.Delete)
			})

			r.Route("/skills", func(r chi.Router) {
				r.Get("/", h.Skills.List)
				r.Post("/", h.Skills.Create)
				r.Put("/{id}", h.Skills.Update)
				r.Delete("/{id}", h.Skills.Delete)
			})

			r.Route("/certificates", func(r chi.Router) {
				r.Get("/", h.Certificates.List)
				r.Post("/", h.Certificates.Create)
				r.Get("/{id}", h.Certificates.Get)
				r.Put("/{id}", h.Certificates.Update)
				r.Delete("/{id}", h.Certificates.Delete)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/upload-auth", h.Media.UploadAuth)
				r.Delete("/files/{fileID}", h.Media.DeleteFile)
			})
		})
	})
}
