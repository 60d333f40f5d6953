package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"petlink/internal/config"
	"petlink/internal/http/handlers"
	applog "petlink/internal/log"
	"petlink/internal/repos"
	"petlink/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	principalRepo := repos.NewPrincipalRepo(db)
	authSvc := &services.AuthService{Principals: principalRepo}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachSession(authSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// AJAX endpoints take JSON bodies, not forms
			return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, authSvc)

	loginThrottle := func() fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        5,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
			},
		})
	}

	// Public pages
	app.Get("/", deps.PetHandler.Home)
	app.Get("/adopt", deps.PetHandler.Adopt)
	app.Get("/pet/:id", deps.PetHandler.Detail)
	app.Get("/search_pets", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.PetHandler.Search)

	// Auth
	app.Get("/register", deps.AuthHandler.RegisterForm)
	app.Post("/register", deps.AuthHandler.Register)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", loginThrottle(), deps.AuthHandler.Login)
	app.Get("/owner-login", deps.AuthHandler.OwnerLoginForm)
	app.Post("/owner-login", loginThrottle(), deps.AuthHandler.OwnerLogin)
	app.Get("/logout", deps.AuthHandler.Logout)

	// User profile
	app.Get("/profile", handlers.RequireUser(), deps.AuthHandler.Profile)
	app.Post("/profile", handlers.RequireUser(), deps.AuthHandler.UpdateProfile)
	app.Post("/delete-profile", handlers.RequireUserJSON(), deps.AuthHandler.DeleteProfile)

	// Adoption & likes (user AJAX)
	app.Post("/request-adoption/:pet_id", handlers.RequireUserJSON(), deps.AdoptionHandler.Request)
	app.Post("/like-pet/:id", handlers.RequireUserJSON(), deps.LikeHandler.Toggle)

	// Care tips
	app.Get("/care", deps.CareHandler.List)
	app.Get("/care/new", handlers.RequireUser(), deps.CareHandler.NewForm)
	app.Post("/care/new", handlers.RequireUser(), deps.CareHandler.Create)
	app.Get("/care/:id", deps.CareHandler.Detail)
	app.Post("/care/:id/comment", handlers.RequireUserJSON(), deps.CareHandler.Comment)

	// Owner dashboard
	app.Get("/owner-dashboard", handlers.RequireOwner(), deps.OwnerHandler.Dashboard)
	app.Get("/owner-dashboard/analytics", deps.OwnerHandler.AnalyticsJSON)
	app.Post("/add-pet", handlers.RequireOwnerJSON(), deps.OwnerHandler.AddPet)
	app.Post("/update-pet/:id", handlers.RequireOwnerJSON(), deps.OwnerHandler.UpdatePet)
	app.Post("/delete-pet/:id", handlers.RequireOwnerJSON(), deps.OwnerHandler.DeletePet)
	app.Post("/update-request-status/:id", handlers.RequireOwnerJSON(), deps.OwnerHandler.UpdateRequestStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
