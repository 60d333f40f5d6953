package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"petlink/internal/log"
	"petlink/internal/repos"
	"petlink/internal/services"
	"petlink/internal/validate"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Adoption *services.AdoptionService
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{})
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	contact := c.FormValue("contact")
	address := c.FormValue("address")
	if !okName || !okEmail || !validate.Password(pass) || contact == "" || address == "" {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
			"Err": "Please fill in all fields with valid values.",
		})
	}

	if err := h.Auth.RegisterUser(name, email, pass, contact, address); err != nil {
		if errors.Is(err, repos.ErrEmailTaken) {
			log.Security(c, "auth.register.duplicate", map[string]any{"email": email})
			return c.Status(fiber.StatusConflict).Render("register", fiber.Map{
				"Err": "Email already exists!",
			})
		}
		log.Error(c, "auth.register.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("register", fiber.Map{
			"Err": "Registration failed. Please try again.",
		})
	}

	log.Audit(c, "auth.register.success", map[string]any{"email": email})
	flash(c, "Registration successful! Please login.")
	return c.Redirect("/login")
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{})
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password!"})
	}
	if _, err := h.Auth.LoginUser(sid, email, c.FormValue("password")); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password!"})
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	flash(c, "Login successful!")
	return c.Redirect("/")
}

func (h *AuthHandler) OwnerLoginForm(c *fiber.Ctx) error {
	return render(c, "owner_login", fiber.Map{})
}

// POST /owner-login
func (h *AuthHandler) OwnerLogin(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		log.Security(c, "auth.owner_login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("owner_login", fiber.Map{"Err": "Invalid email or password!"})
	}
	if _, err := h.Auth.LoginOwner(sid, email, c.FormValue("password")); err != nil {
		log.Security(c, "auth.owner_login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("owner_login", fiber.Map{"Err": "Invalid email or password!"})
	}
	log.Audit(c, "auth.owner_login.success", map[string]any{"email": email})
	flash(c, "Owner login successful!")
	return c.Redirect("/owner-dashboard")
}

// GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	flash(c, "Logged out successfully!")
	return c.Redirect("/")
}

// GET /profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	s := sessionFrom(c)
	u, err := h.Auth.Principals.UserByID(s.PrincipalID)
	if err != nil {
		log.Error(c, "profile.load.fail", err, nil)
		flash(c, "Could not load your profile.")
		return c.Redirect("/")
	}
	reqs, err := h.Adoption.RequestsForUser(s.PrincipalID)
	if err != nil {
		log.Error(c, "profile.requests.fail", err, nil)
		flash(c, "Could not load your profile.")
		return c.Redirect("/")
	}
	return render(c, "profile", fiber.Map{"User": u, "Requests": reqs})
}

// POST /profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	s := sessionFrom(c)
	name, okName := validate.Name(c.FormValue("name"))
	contact := c.FormValue("contact")
	address := c.FormValue("address")
	password := c.FormValue("password")
	if !okName || contact == "" || address == "" {
		flash(c, "All fields are required!")
		return c.Redirect("/profile")
	}
	if password != "" && !validate.Password(password) {
		flash(c, "Password must be at least 6 characters.")
		return c.Redirect("/profile")
	}

	if err := h.Auth.UpdateProfile(s.PrincipalID, name, contact, address, password); err != nil {
		log.Error(c, "profile.update.fail", err, nil)
		flash(c, "Could not update your profile.")
		return c.Redirect("/profile")
	}
	log.Audit(c, "profile.update", map[string]any{"user_id": s.PrincipalID})
	flash(c, "Profile updated successfully!")
	return c.Redirect("/profile")
}

type deleteProfileBody struct {
	Password string `json:"password"`
}

// POST /delete-profile
func (h *AuthHandler) DeleteProfile(c *fiber.Ctx) error {
	s := sessionFrom(c)
	var body deleteProfileBody
	if err := c.BodyParser(&body); err != nil || body.Password == "" {
		return jsonFail(c, "Password is required to delete your profile.")
	}

	if err := h.Auth.DeleteUser(s.PrincipalID, body.Password); err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			log.Security(c, "profile.delete.badpass", map[string]any{"user_id": s.PrincipalID})
			return jsonFail(c, "Incorrect password. Profile deletion cancelled.")
		}
		log.Error(c, "profile.delete.fail", err, map[string]any{"user_id": s.PrincipalID})
		return jsonFail(c, "Could not delete your profile.")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "profile.delete", map[string]any{"user_id": s.PrincipalID})
	return jsonOK(c, "Profile deleted successfully. You can register again anytime.", nil)
}
