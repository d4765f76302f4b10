package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the HttpOnly cookie carrying the signed
// session token.
const SessionCookie = "tohally_session"

// SessionManager issues and validates the signed session tokens that bind a
// browser to an authenticated administrator.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager builds a new manager.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// SessionClaims describes the session token payload.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the authenticated user id carried by the token.
func (c *SessionClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Issue builds and signs a session token for the user id.
func (sm *SessionManager) Issue(userID int64) (string, time.Time, error) {
	expiresAt := time.Now().Add(sm.ttl)
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(sm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates a session token and returns its claims.
func (sm *SessionManager) Parse(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return sm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// SetCookie attaches the session token to the response.
func (sm *SessionManager) SetCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie destroys the session unconditionally by expiring the cookie.
func (sm *SessionManager) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
