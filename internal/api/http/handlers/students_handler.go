package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tohally/academy-web/internal/api/dto"
	"github.com/tohally/academy-web/internal/auth"
	"github.com/tohally/academy-web/internal/flash"
	"github.com/tohally/academy-web/internal/service"
	util "github.com/tohally/academy-web/pkg/util"
)

// StudentsHandler serves the admin management panel: listing, the
// create/edit enrollment form and deletion.
type StudentsHandler struct {
	students *service.StudentService
	flashes  flash.Store
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(studentService *service.StudentService, flashes flash.Store) *StudentsHandler {
	return &StudentsHandler{students: studentService, flashes: flashes}
}

// List handles GET /movimiento.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	students, err := h.students.List(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, h.flashes, "movimiento", fiber.Map{"Alumnos": students})
}

// EnrollForm handles GET /inscribir and GET /inscribir/:id.
func (h *StudentsHandler) EnrollForm(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return err
	}
	if id == nil {
		return render(c, h.flashes, "inscripciones", fiber.Map{})
	}

	student, err := h.students.Get(c.UserContext(), *id)
	if err != nil {
		return err
	}
	return render(c, h.flashes, "inscripciones", fiber.Map{"Alumno": student})
}

// Enroll handles POST /inscribir and POST /inscribir/:id.
func (h *StudentsHandler) Enroll(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return err
	}

	var form dto.EnrollmentForm
	if err := c.BodyParser(&form); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return util.NewUnauthorized("session required")
	}
	result, err := h.students.Enroll(c.UserContext(), actor.ID, id, service.EnrollmentInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		BirthDate: form.BirthDate,
		Contact:   form.Contact,
		Category:  form.Category,
	})
	if err != nil {
		if domainErr := util.ToDomainError(err); domainErr.Code == "PERSISTENCE_FAILURE" {
			// The transaction is already rolled back; send the admin back to
			// the same form, keeping the attempted id, so they can retry.
			flash.Add(c, h.flashes, flash.CategoryDanger, "Ocurrió un error al guardar en la base de datos.")
			target := "/inscribir"
			if id != nil {
				target = fmt.Sprintf("/inscribir/%d", *id)
			}
			return c.Redirect(target, fiber.StatusSeeOther)
		}
		return err
	}

	if result.DateInvalid {
		flash.Add(c, h.flashes, flash.CategoryWarning, "Error en el formato de la Fecha de Nacimiento. Se usará la edad existente o 0.")
	}

	if result.Created {
		flash.Add(c, h.flashes, flash.CategorySuccess, fmt.Sprintf("Estudiante '%s' registrado exitosamente.", result.Student.Name))
	} else {
		flash.Add(c, h.flashes, flash.CategorySuccess, fmt.Sprintf("Estudiante '%s' actualizado exitosamente.", result.Student.Name))
	}
	return c.Redirect("/movimiento", fiber.StatusSeeOther)
}

// Delete handles POST /eliminar_alumno/:id.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	id, err := requiredID(c)
	if err != nil {
		return err
	}

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return util.NewUnauthorized("session required")
	}
	student, err := h.students.Delete(c.UserContext(), actor.ID, id)
	if err != nil {
		if domainErr := util.ToDomainError(err); domainErr.Code == "PERSISTENCE_FAILURE" {
			flash.Add(c, h.flashes, flash.CategoryDanger, "Ocurrió un error al eliminar el registro.")
			return c.Redirect("/movimiento", fiber.StatusSeeOther)
		}
		return err
	}

	flash.Add(c, h.flashes, flash.CategoryInfo, fmt.Sprintf("El registro de '%s' ha sido eliminado.", student.Name))
	return c.Redirect("/movimiento", fiber.StatusSeeOther)
}

// optionalID parses the :id route parameter when present. A malformed id is
// a NOT_FOUND, the same as an id that resolves to nothing.
func optionalID(c *fiber.Ctx) (*int64, error) {
	raw := c.Params("id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, util.NewNotFound("alumno", map[string]any{"id": raw})
	}
	return &id, nil
}

func requiredID(c *fiber.Ctx) (int64, error) {
	id, err := optionalID(c)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, util.NewNotFound("alumno", nil)
	}
	return *id, nil
}
