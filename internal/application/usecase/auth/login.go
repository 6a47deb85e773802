package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/khoahotran/cv-studio/internal/domain/user"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/auth"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("auth_usecase")

type LoginUseCase struct {
	users  user.Repository
	jwtSvc *auth.JWTService
	logger logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{users: repo, jwtSvc: jwtSvc, logger: log}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

// Execute exchanges owner credentials for a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.users.FindByEmail(ctx, user.NormalizeEmail(input.Email))
	if errors.Is(err, apperror.ErrNotFound) {
		err = apperror.NewUnauthorized("email or password is incorrect", nil)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := apperror.NewUnauthorized("email or password is incorrect", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{AccessToken: token}, nil
}

type SeedOwnerUseCase struct {
	users  user.Repository
	logger logger.Logger
}

func NewSeedOwnerUseCase(repo user.Repository, log logger.Logger) *SeedOwnerUseCase {
	return &SeedOwnerUseCase{users: repo, logger: log}
}

type SeedOwnerInput struct {
	Email    string
	Password string
	Name     string
}

// Execute creates the owner account, or resets its password when it exists.
func (uc *SeedOwnerUseCase) Execute(ctx context.Context, input SeedOwnerInput) (*user.User, error) {
	email := user.NormalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.NewInvalidInput("a valid email is required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}
	u := &user.User{Email: email, PasswordHash: hash}
	if name := strings.TrimSpace(input.Name); name != "" {
		u.Name = &name
	}
	if err := uc.users.Upsert(ctx, u); err != nil {
		uc.logger.Error("Failed to seed owner", err, zap.String("email", email))
		return nil, err
	}
	uc.logger.Info("Owner account ready", zap.String("user_id", u.ID.String()), zap.String("email", email))
	return u, nil
}
