package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/config"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/mailer"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the token payload shared by issuance here and verification in the
// HTTP middleware.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserUsecase covers registration, login and profile reads.
type UserUsecase struct {
	repo   repository.UserRepository
	sender mailer.Sender
	auth   config.AuthConfig
	logger *zap.Logger
}

func NewUserUsecase(repo repository.UserRepository, sender mailer.Sender, auth config.AuthConfig, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, sender: sender, auth: auth, logger: logger}
}

// Register creates the account and sends a welcome email. The email is
// best-effort; a mail failure never fails the registration.
func (uc *UserUsecase) Register(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := user.Validate(); err != nil {
		return nil, validationErr(err.Error())
	}
	user.CreatedAt = time.Now().UTC()

	id, err := uc.repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, validationErr("username already taken")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, validationErr("email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	if uc.sender != nil {
		if err := uc.sender.SendWelcomeEmail(user.Email, user.Username); err != nil {
			uc.logger.Warn("Failed to send welcome email", zap.String("email", user.Email), zap.Error(err))
		}
	}
	uc.logger.Info("User registered", zap.String("id", id), zap.String("role", user.Role))
	return user, nil
}

// Login verifies the credential and issues a signed token carrying the user
// id and role. A wrong email and a wrong password are indistinguishable to
// the caller.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.auth.TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.auth.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	uc.logger.Info("User logged in", zap.String("id", user.ID))
	return token, user, nil
}

func (uc *UserUsecase) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
