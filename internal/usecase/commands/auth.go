package commands

import (
	"context"
	"errors"
	"strings"

	"portfolio-services/internal/infra"
	"portfolio-services/internal/pkg/errs"
	"portfolio-services/internal/pkg/jwt"
	"portfolio-services/internal/pkg/password"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginResult struct {
	Token string
	Email string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	EnsureAdmin(ctx context.Context, email, plainPassword string) error
}

type authUseCaseImpl struct {
	users UserRepository
	jwt   *jwt.Service
}

func NewAuthCommands(users UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authUseCaseImpl{
		users: users,
		jwt:   jwtService,
	}
}

func (uc *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Wrap(err, "failed to find user")
	}

	if err := password.ComparePassword(user.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, Email: user.Email}, nil
}

// EnsureAdmin provisions the configured reviewer account at startup so the
// admin surface works without a separate signup flow.
func (uc *authUseCaseImpl) EnsureAdmin(ctx context.Context, email, plainPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := password.HashPassword(plainPassword)
	if err != nil {
		return errs.Wrap(err, "failed to hash admin password")
	}

	if err := uc.users.Upsert(ctx, email, hash); err != nil {
		return errs.Wrap(err, "failed to ensure admin user")
	}
	return nil
}
