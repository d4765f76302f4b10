package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tohally/academy-web/internal/auth"
	"github.com/tohally/academy-web/internal/domain"
	"github.com/tohally/academy-web/internal/repository"
	util "github.com/tohally/academy-web/pkg/util"
)

const uniqueViolationCode = "23505"

// AuthService coordinates credential verification and account creation.
type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, bcryptCost int) *AuthService {
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// Login verifies the email/password pair against the stored bcrypt hash and
// returns the matching administrator. Unknown emails and wrong passwords
// both fail with the same INVALID_CREDENTIALS error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, util.NewInvalidCredentials()
	}
	return user, nil
}

// CreateAdmin registers an administrator account. The email must be unused;
// the precheck catches the common case and the unique index on correo the
// concurrent one.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, util.NewConflict("email already registered", map[string]any{"correo": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, util.NewConflict("email already registered", map[string]any{"correo": email})
		}
		return nil, util.NewPersistenceFailure(err)
	}
	return user, nil
}
