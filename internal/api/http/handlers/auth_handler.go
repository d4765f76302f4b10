package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tohally/academy-web/internal/api/dto"
	"github.com/tohally/academy-web/internal/auth"
	"github.com/tohally/academy-web/internal/flash"
	"github.com/tohally/academy-web/internal/service"
	util "github.com/tohally/academy-web/pkg/util"
)

// AuthHandler serves the login and logout pages.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionManager
	flashes  flash.Store
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager, flashes flash.Store) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions, flashes: flashes}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok := auth.CurrentUser(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return render(c, h.flashes, "login", fiber.Map{"Next": c.Query("next")})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	// An active session skips re-authentication entirely.
	if _, ok := auth.CurrentUser(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Login(c.UserContext(), form.Email, form.Password)
	if err != nil {
		if domainErr := util.ToDomainError(err); domainErr.Code == "INVALID_CREDENTIALS" {
			flash.Add(c, h.flashes, flash.CategoryDanger, "Credenciales incorrectas")
			return render(c, h.flashes, "login", fiber.Map{"Next": c.Query("next")})
		}
		return err
	}

	token, expiresAt, err := h.sessions.Issue(user.ID)
	if err != nil {
		return util.NewInternalError(err)
	}
	h.sessions.SetCookie(c, token, expiresAt)

	flash.Add(c, h.flashes, flash.CategorySuccess, fmt.Sprintf("Bienvenido, %s", user.Name))
	return c.Redirect(safeNext(c.Query("next")), fiber.StatusSeeOther)
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.ClearCookie(c)
	flash.Add(c, h.flashes, flash.CategoryInfo, "Sesión cerrada correctamente")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// safeNext returns the post-login target, falling back to home for absent
// or non-local values so the login form cannot be used as an open redirect.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
