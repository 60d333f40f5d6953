package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"petlink/internal/domain"
	"petlink/internal/http/handlers"
	"petlink/internal/repos"
	"petlink/internal/services"
)

// newTestApp wires the full route table against an in-memory database,
// with the same csrf setup as production (form posts need a token, JSON
// endpoints do not).
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *repos.PrincipalRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	principalRepo := repos.NewPrincipalRepo(db)
	authSvc := &services.AuthService{Principals: principalRepo}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(handlers.AttachSession(authSvc))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, authSvc)

	app.Get("/", deps.PetHandler.Home)
	app.Get("/adopt", deps.PetHandler.Adopt)
	app.Get("/pet/:id", deps.PetHandler.Detail)
	app.Get("/search_pets", deps.PetHandler.Search)

	app.Get("/register", deps.AuthHandler.RegisterForm)
	app.Post("/register", deps.AuthHandler.Register)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", deps.AuthHandler.Login)
	app.Get("/owner-login", deps.AuthHandler.OwnerLoginForm)
	app.Post("/owner-login", deps.AuthHandler.OwnerLogin)
	app.Get("/logout", deps.AuthHandler.Logout)

	app.Get("/profile", handlers.RequireUser(), deps.AuthHandler.Profile)
	app.Post("/profile", handlers.RequireUser(), deps.AuthHandler.UpdateProfile)
	app.Post("/delete-profile", handlers.RequireUserJSON(), deps.AuthHandler.DeleteProfile)

	app.Post("/request-adoption/:pet_id", handlers.RequireUserJSON(), deps.AdoptionHandler.Request)
	app.Post("/like-pet/:id", handlers.RequireUserJSON(), deps.LikeHandler.Toggle)

	app.Get("/care", deps.CareHandler.List)
	app.Get("/care/new", handlers.RequireUser(), deps.CareHandler.NewForm)
	app.Post("/care/new", handlers.RequireUser(), deps.CareHandler.Create)
	app.Get("/care/:id", deps.CareHandler.Detail)
	app.Post("/care/:id/comment", handlers.RequireUserJSON(), deps.CareHandler.Comment)

	app.Get("/owner-dashboard", handlers.RequireOwner(), deps.OwnerHandler.Dashboard)
	app.Get("/owner-dashboard/analytics", deps.OwnerHandler.AnalyticsJSON)
	app.Post("/add-pet", handlers.RequireOwnerJSON(), deps.OwnerHandler.AddPet)
	app.Post("/update-pet/:id", handlers.RequireOwnerJSON(), deps.OwnerHandler.UpdatePet)
	app.Post("/delete-pet/:id", handlers.RequireOwnerJSON(), deps.OwnerHandler.DeletePet)
	app.Post("/update-request-status/:id", handlers.RequireOwnerJSON(), deps.OwnerHandler.UpdateRequestStatus)

	return app, db, principalRepo
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// bindUserSession attaches a user session directly at the repo layer so
// tests can skip the login form dance.
func bindUserSession(t *testing.T, repo *repos.PrincipalRepo, sid string) int64 {
	t.Helper()
	u, err := repo.UserByEmail("alice@petlink.test")
	if err != nil {
		t.Fatalf("seeded user missing: %v", err)
	}
	if err := repo.BindSession(sid, u.ID, domain.RoleUser, u.Name); err != nil {
		t.Fatal(err)
	}
	return u.ID
}

func bindOwnerSession(t *testing.T, repo *repos.PrincipalRepo, sid string) int64 {
	t.Helper()
	o, err := repo.OwnerByEmail("admin@petlink.com")
	if err != nil {
		t.Fatalf("seeded owner missing: %v", err)
	}
	if err := repo.BindSession(sid, o.ID, domain.RoleOwner, o.Name); err != nil {
		t.Fatal(err)
	}
	return o.ID
}
