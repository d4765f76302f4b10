package dto

// LoginForm carries the login page fields. Field names match the original
// site's form inputs.
type LoginForm struct {
	Email    string `form:"correo"`
	Password string `form:"contraseña"`
}
