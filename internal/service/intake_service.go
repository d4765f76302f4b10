package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tohally/academy-web/internal/domain"
	"github.com/tohally/academy-web/internal/events"
	"github.com/tohally/academy-web/internal/repository"
	util "github.com/tohally/academy-web/pkg/util"
)

// IntakeInput carries the public contact form fields. AgeRaw is nil when
// the form did not submit an edad field at all, which is what distinguishes
// a pre-registration from a general inquiry.
type IntakeInput struct {
	Name     string
	Contact  string
	AgeRaw   *string
	Category string
	Email    string
	Message  string
}

// IntakeService handles public contact form submissions. It only ever
// creates records; promotion is exclusively the enrollment workflow's.
type IntakeService struct {
	students   repository.StudentRepository
	dispatcher events.Dispatcher
}

// NewIntakeService constructs the service.
func NewIntakeService(students repository.StudentRepository, dispatcher events.Dispatcher) *IntakeService {
	return &IntakeService{students: students, dispatcher: dispatcher}
}

// Submit stores the submission as a Pre-Inscripción when an age field is
// present and as a Sugerencia/Consulta otherwise.
func (s *IntakeService) Submit(ctx context.Context, input IntakeInput) (*domain.Student, error) {
	student := &domain.Student{
		Name:    strings.TrimSpace(input.Name),
		Contact: input.Contact,
	}

	if input.AgeRaw != nil {
		age, err := strconv.Atoi(strings.TrimSpace(*input.AgeRaw))
		if err != nil || age < 0 {
			age = 0
		}
		student.Age = age
		student.Category = input.Category
		if student.Category == "" {
			student.Category = "N/A"
		}
		student.RequestType = domain.RequestTypePreRegistration
	} else {
		email := input.Email
		if email == "" {
			email = "N/A"
		}
		message := input.Message
		if message == "" {
			message = "Sin mensaje"
		}
		student.Contact = fmt.Sprintf("Email: %s. Mensaje: %s", email, message)
		student.Age = 0
		student.Category = "Consulta"
		student.RequestType = domain.RequestTypeInquiry
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, util.NewPersistenceFailure(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventIntakeReceived,
			StudentID: student.ID,
			Actor:     events.PublicActor(),
			Payload: events.IntakeReceivedPayload{
				Name:        student.Name,
				RequestType: student.RequestType,
			},
		})
	}
	return student, nil
}
