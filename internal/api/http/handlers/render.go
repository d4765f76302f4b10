package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tohally/academy-web/internal/auth"
	"github.com/tohally/academy-web/internal/flash"
)

// render wraps c.Render, injecting the pending flash notifications and the
// authenticated administrator so every template can show them.
func render(c *fiber.Ctx, flashes flash.Store, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = flash.Pop(c, flashes)
	if user, ok := auth.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	return c.Render(name, data)
}
