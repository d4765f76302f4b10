package auth

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/tohally/academy-web/internal/domain"
	"github.com/tohally/academy-web/internal/flash"
	util "github.com/tohally/academy-web/pkg/util"
)

const principalKey = "auth_principal"

// IdentityResolver maps a session user id to the account it belongs to.
// The user repository satisfies it; tests inject an in-memory fake.
type IdentityResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// SessionMiddleware loads the current administrator from the session cookie
// and guards the protected admin routes.
type SessionMiddleware struct {
	sessions *SessionManager
	resolver IdentityResolver
	flashes  flash.Store
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *SessionManager, resolver IdentityResolver, flashes flash.Store) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, resolver: resolver, flashes: flashes}
}

// LoadPrincipal resolves the session cookie into a principal when present.
// It never rejects the request; unauthenticated visitors simply carry no
// principal. Public routes use this to show the right navigation state.
func (m *SessionMiddleware) LoadPrincipal(c *fiber.Ctx) error {
	token := c.Cookies(SessionCookie)
	if token == "" {
		return c.Next()
	}

	claims, err := m.sessions.Parse(token)
	if err != nil {
		m.sessions.ClearCookie(c)
		return c.Next()
	}

	userID, err := claims.UserID()
	if err != nil {
		m.sessions.ClearCookie(c)
		return c.Next()
	}

	user, err := m.resolver.GetByID(c.UserContext(), userID)
	if err != nil {
		// Stale cookie for a deleted account behaves like no session.
		if util.IsNotFound(err) {
			m.sessions.ClearCookie(c)
			return c.Next()
		}
		return err
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// RequireSession redirects unauthenticated requests to the login page,
// preserving the originally requested path for the post-login redirect.
func (m *SessionMiddleware) RequireSession(c *fiber.Ctx) error {
	if _, ok := CurrentUser(c); ok {
		return c.Next()
	}

	flash.Add(c, m.flashes, flash.CategoryWarning, "Debes iniciar sesión para acceder a esta página.")
	return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
}

// CurrentUser retrieves the authenticated administrator, if any.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
