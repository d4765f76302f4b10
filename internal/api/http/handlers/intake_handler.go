package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tohally/academy-web/internal/api/dto"
	"github.com/tohally/academy-web/internal/flash"
	"github.com/tohally/academy-web/internal/service"
	util "github.com/tohally/academy-web/pkg/util"
)

// IntakeHandler serves the public contact form.
type IntakeHandler struct {
	intake  *service.IntakeService
	flashes flash.Store
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intakeService *service.IntakeService, flashes flash.Store) *IntakeHandler {
	return &IntakeHandler{intake: intakeService, flashes: flashes}
}

// ContactPage handles GET /contacto.
func (h *IntakeHandler) ContactPage(c *fiber.Ctx) error {
	return render(c, h.flashes, "contacto", fiber.Map{})
}

// Contact handles POST /contacto.
func (h *IntakeHandler) Contact(c *fiber.Ctx) error {
	var form dto.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	input := service.IntakeInput{
		Name:     form.Name,
		Contact:  form.Contact,
		Category: form.Category,
		Email:    form.Email,
		Message:  form.Message,
	}
	// Presence of the edad field, not its value, marks a pre-registration.
	if c.Request().PostArgs().Has("edad") {
		age := form.Age
		input.AgeRaw = &age
	}

	if _, err := h.intake.Submit(c.UserContext(), input); err != nil {
		flash.Add(c, h.flashes, flash.CategoryDanger, "Ocurrió un error al procesar tu solicitud. Intenta de nuevo.")
		return render(c, h.flashes, "contacto", fiber.Map{})
	}

	flash.Add(c, h.flashes, flash.CategorySuccess, "¡Tu solicitud ha sido enviada con éxito! Nos pondremos en contacto pronto.")
	return c.Redirect("/contacto", fiber.StatusSeeOther)
}
