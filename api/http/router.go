package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumic/api/http/handlers"
)

// Handlers groups everything Register wires onto the app.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Resume   *handlers.ResumeHandler
	Profile  *handlers.ProfileHandler
	GitHub   *handlers.GitHubHandler
	LinkedIn *handlers.LinkedInHandler
	Contact  *handlers.ContactHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	v1.Post("/contact", h.Contact.Submit)

	// Resume uploads, extraction and draft confirmation
	rg := v1.Group("/resume", authMW)
	rg.Post("/upload", h.Resume.Upload)
	rg.Post("/extract", h.Resume.Extract)
	rg.Post("/confirm", h.Profile.Confirm)
	rg.Get("/uploads", h.Resume.List)
	rg.Delete("/uploads/:id", h.Resume.Delete)

	// Merged profile
	v1.Get("/profile", authMW, h.Profile.Get)

	// External data sources
	gh := v1.Group("/github", authMW)
	gh.Post("/connect", h.GitHub.Connect)
	gh.Post("/disconnect", h.GitHub.Disconnect)

	li := v1.Group("/linkedin")
	li.Get("/auth-url", authMW, h.LinkedIn.AuthURL)
	li.Post("/callback", h.LinkedIn.Callback)
	li.Post("/disconnect", authMW, h.LinkedIn.Disconnect)
}
