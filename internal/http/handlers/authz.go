package handlers

import (
	applog "petlink/internal/log"
	"petlink/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// AttachSession resolves the sid cookie once per request and exposes the
// session to handlers and templates. Unauthenticated requests simply carry
// no session.
func AttachSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if s, err := auth.Current(sid); err == nil && s != nil {
				c.Locals("session", s)
			}
		}
		return c.Next()
	}
}

// RequireUser gates HTML routes that need a user session. A missing session
// and a wrong-role session are treated the same: off to the login page.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s := sessionFrom(c); !s.IsUser() {
			flash(c, "Please login to continue.")
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// RequireOwner gates the owner dashboard pages.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s := sessionFrom(c); !s.IsOwner() {
			applog.Security(c, "access.denied.owner", nil)
			flash(c, "Please login as owner to access the dashboard.")
			return c.Redirect("/owner-login")
		}
		return c.Next()
	}
}

// RequireUserJSON gates AJAX endpoints; failures are payloads, never 500s.
func RequireUserJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s := sessionFrom(c); !s.IsUser() {
			return jsonFail(c, "Please login to continue.")
		}
		return c.Next()
	}
}

func RequireOwnerJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s := sessionFrom(c); !s.IsOwner() {
			applog.Security(c, "access.denied.owner", nil)
			return jsonFail(c, "Unauthorized")
		}
		return c.Next()
	}
}
