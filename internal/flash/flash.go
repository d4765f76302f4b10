// Package flash stores one-shot user notifications between a redirect and
// the next page render, keyed by a per-browser scope cookie.
package flash

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ScopeCookie names the cookie carrying the browser's flash scope.
const ScopeCookie = "tohally_flash"

// Categories mirror the notification styles rendered by the templates.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
	CategoryInfo    = "info"
	CategoryWarning = "warning"
)

// Message is a single transient notification.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Store persists messages until the next page render pops them.
type Store interface {
	Add(ctx context.Context, scope string, msg Message) error
	Pop(ctx context.Context, scope string) ([]Message, error)
}

// Add queues a notification for the requesting browser, establishing the
// scope cookie when the browser has none yet.
func Add(c *fiber.Ctx, store Store, category, text string) {
	scope := c.Cookies(ScopeCookie)
	if scope == "" {
		scope = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     ScopeCookie,
			Value:    scope,
			Expires:  time.Now().Add(24 * time.Hour),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
		// Make the fresh scope visible to Pop within this same request, so
		// a page that flashes and re-renders shows the message immediately.
		c.Request().Header.SetCookie(ScopeCookie, scope)
	}
	// A lost notification only costs the user a status line, never data.
	_ = store.Add(c.UserContext(), scope, Message{Category: category, Text: text})
}

// Pop drains the notifications queued for the requesting browser.
func Pop(c *fiber.Ctx, store Store) []Message {
	scope := c.Cookies(ScopeCookie)
	if scope == "" {
		return nil
	}
	msgs, err := store.Pop(c.UserContext(), scope)
	if err != nil {
		return nil
	}
	return msgs
}
