package domain

import "time"

// RequestType enumerates how a student record entered the system. The
// Spanish values are stored verbatim in the alumnos table and rendered in
// the admin panel.
type RequestType string

const (
	RequestTypePreRegistration RequestType = "Pre-Inscripción"
	RequestTypeInquiry         RequestType = "Sugerencia/Consulta"
	RequestTypeAdminEnrolled   RequestType = "Inscrito por Admin"
)

// Student is the aggregate for prospective students, active enrollments and
// general inquiries submitted through the public contact form.
type Student struct {
	ID          int64
	Name        string
	Age         int
	Category    string
	Contact     string
	RequestType RequestType
	RequestedAt time.Time
}

// Promote marks the record as enrolled by an administrator. The transition
// is one-way: records already enrolled stay enrolled.
func (s *Student) Promote() {
	if s.RequestType == RequestTypePreRegistration || s.RequestType == RequestTypeInquiry {
		s.RequestType = RequestTypeAdminEnrolled
	}
}

// AgeAt returns the age in whole years at the reference date, subtracting a
// year when the birthday has not yet occurred that year. Never negative.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
