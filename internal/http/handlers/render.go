package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"petlink/internal/domain"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject session principal if present
	if s := sessionFrom(c); s != nil {
		data["Session"] = s
	}
	// Pick up the token the CSRF middleware put into Locals
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	// One-shot flash message from a prior redirect
	if msg := c.Cookies("flash"); msg != "" {
		data["Flash"] = msg
		clearFlash(c)
	}
	return c.Render(tmpl, data)
}

func sessionFrom(c *fiber.Ctx) *domain.Session {
	s, _ := c.Locals("session").(*domain.Session)
	return s
}

// viewerID returns the user id for like annotations, 0 for anonymous
// visitors and owner sessions.
func viewerID(c *fiber.Ctx) int64 {
	if s := sessionFrom(c); s.IsUser() {
		return s.PrincipalID
	}
	return 0
}

// flash sets a one-shot message shown by the next rendered page.
func flash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     "flash",
		Value:    msg,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearFlash(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "flash",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func jsonFail(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"success": false, "message": msg})
}

func jsonOK(c *fiber.Ctx, msg string, extra fiber.Map) error {
	m := fiber.Map{"success": true, "message": msg}
	for k, v := range extra {
		m[k] = v
	}
	return c.JSON(m)
}
