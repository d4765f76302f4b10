package events

import (
	"time"

	"github.com/tohally/academy-web/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStudentEnrolled EventType = "student_enrolled"
	EventStudentUpdated  EventType = "student_updated"
	EventStudentDeleted  EventType = "student_deleted"
	EventIntakeReceived  EventType = "intake_received"
)

// Actor identifies who triggered an event: an administrator id, or nil for
// the public contact form.
type Actor struct {
	AdminID *int64 `json:"admin_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	StudentID int64       `json:"student_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StudentEnrolledPayload payload.
type StudentEnrolledPayload struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Category string `json:"category"`
}

// StudentUpdatedPayload payload.
type StudentUpdatedPayload struct {
	Name         string             `json:"name"`
	Promoted     bool               `json:"promoted"`
	PreviousType domain.RequestType `json:"previous_type"`
}

// StudentDeletedPayload payload.
type StudentDeletedPayload struct {
	Name string `json:"name"`
}

// IntakeReceivedPayload payload.
type IntakeReceivedPayload struct {
	Name        string             `json:"name"`
	RequestType domain.RequestType `json:"request_type"`
}

// AdminActor builds an Actor for an administrator id.
func AdminActor(id int64) Actor {
	return Actor{AdminID: &id}
}

// PublicActor builds an Actor for the anonymous contact form.
func PublicActor() Actor {
	return Actor{}
}
