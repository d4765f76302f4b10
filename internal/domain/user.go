package domain

// UserRole enumerates account roles. Only administrators exist today; the
// column is kept so additional roles can be added without a schema change.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
)

// User is the domain model for administrator accounts.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
}
