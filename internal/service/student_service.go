package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tohally/academy-web/internal/domain"
	"github.com/tohally/academy-web/internal/events"
	"github.com/tohally/academy-web/internal/repository"
	util "github.com/tohally/academy-web/pkg/util"
)

const birthDateLayout = "2006-01-02"

// EnrollmentInput carries the admin enrollment form fields.
type EnrollmentInput struct {
	FirstName string
	LastName  string
	BirthDate string
	Contact   string
	Category  string
}

// EnrollmentResult reports what the workflow did. DateInvalid signals the
// soft failure path: the birth date did not parse, the fallback age was
// used and the caller should show a warning.
type EnrollmentResult struct {
	Student     *domain.Student
	Created     bool
	DateInvalid bool
}

// StudentService owns the enrollment workflow, the management listing and
// record deletion.
type StudentService struct {
	students   repository.StudentRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewStudentService constructs the service.
func NewStudentService(students repository.StudentRepository, dispatcher events.Dispatcher) *StudentService {
	return &StudentService{students: students, dispatcher: dispatcher, now: time.Now}
}

// Enroll creates a record when id is nil and updates the existing one
// otherwise. Editing a public submission promotes it to admin-enrolled.
func (s *StudentService) Enroll(ctx context.Context, actorID int64, id *int64, input EnrollmentInput) (*EnrollmentResult, error) {
	var existing *domain.Student
	if id != nil {
		var err error
		existing, err = s.students.GetByID(ctx, *id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewNotFound("alumno", map[string]any{"id": *id})
			}
			return nil, err
		}
	}

	fullName := strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName)

	age, dateInvalid := s.deriveAge(input.BirthDate, existing)

	if existing == nil {
		student := &domain.Student{
			Name:        fullName,
			Age:         age,
			Category:    input.Category,
			Contact:     input.Contact,
			RequestType: domain.RequestTypeAdminEnrolled,
		}
		if err := s.students.Create(ctx, student); err != nil {
			return nil, util.NewPersistenceFailure(err)
		}
		s.publish(ctx, events.Event{
			Type:      events.EventStudentEnrolled,
			StudentID: student.ID,
			Actor:     events.AdminActor(actorID),
			Payload: events.StudentEnrolledPayload{
				Name:     student.Name,
				Age:      student.Age,
				Category: student.Category,
			},
		})
		return &EnrollmentResult{Student: student, Created: true, DateInvalid: dateInvalid}, nil
	}

	previousType := existing.RequestType
	existing.Name = fullName
	existing.Age = age
	existing.Category = input.Category
	existing.Contact = input.Contact
	existing.Promote()

	if err := s.students.Update(ctx, existing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("alumno", map[string]any{"id": existing.ID})
		}
		return nil, util.NewPersistenceFailure(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventStudentUpdated,
		StudentID: existing.ID,
		Actor:     events.AdminActor(actorID),
		Payload: events.StudentUpdatedPayload{
			Name:         existing.Name,
			Promoted:     previousType != existing.RequestType,
			PreviousType: previousType,
		},
	})
	return &EnrollmentResult{Student: existing, DateInvalid: dateInvalid}, nil
}

// Get fetches a record for the edit form.
func (s *StudentService) Get(ctx context.Context, id int64) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("alumno", map[string]any{"id": id})
		}
		return nil, err
	}
	return student, nil
}

// List returns every record ordered by name for the management view.
func (s *StudentService) List(ctx context.Context) ([]domain.Student, error) {
	return s.students.ListOrderedByName(ctx)
}

// Delete permanently removes a record, returning it so the caller can name
// the deleted student in the notification.
func (s *StudentService) Delete(ctx context.Context, actorID, id int64) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("alumno", map[string]any{"id": id})
		}
		return nil, err
	}

	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("alumno", map[string]any{"id": id})
		}
		return nil, util.NewPersistenceFailure(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventStudentDeleted,
		StudentID: id,
		Actor:     events.AdminActor(actorID),
		Payload:   events.StudentDeletedPayload{Name: student.Name},
	})
	return student, nil
}

// deriveAge computes the whole-year age from the birth date. When the date
// is missing or malformed the previous age is kept for edits and 0 used for
// new records; the operation itself still proceeds.
func (s *StudentService) deriveAge(birthDate string, existing *domain.Student) (age int, invalid bool) {
	birth, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		if existing != nil {
			return existing.Age, true
		}
		return 0, true
	}
	return domain.AgeAt(birth, s.now()), false
}

func (s *StudentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}
