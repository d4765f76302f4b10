package dto

// EnrollmentForm carries the admin create/edit form fields.
type EnrollmentForm struct {
	FirstName string `form:"nombre"`
	LastName  string `form:"apellido"`
	BirthDate string `form:"fecha_nacimiento"`
	Contact   string `form:"contacto_padre"`
	Category  string `form:"categoria"`
}

// ContactForm carries the public contact form fields. The same form serves
// pre-registrations and inquiries; which one was submitted is decided by
// whether the edad field was present in the request body.
type ContactForm struct {
	Name     string `form:"nombre"`
	Contact  string `form:"contacto"`
	Age      string `form:"edad"`
	Category string `form:"categoria"`
	Email    string `form:"email"`
	Message  string `form:"mensaje"`
}
