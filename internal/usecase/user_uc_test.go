package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/config"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type recordingSender struct {
	sentTo []string
	fail   bool
}

func (s *recordingSender) SendWelcomeEmail(toEmail, username string) error {
	if s.fail {
		return errors.New("smtp unreachable")
	}
	s.sentTo = append(s.sentTo, toEmail)
	return nil
}

var testAuth = config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}

func validUser() *entity.User {
	return &entity.User{
		Username: "nimal",
		Email:    "nimal@example.com",
		Password: "hunter2hunter2",
		Phone:    "+94771234567",
		Role:     entity.RoleTourist,
	}
}

func TestRegister_SendsWelcomeEmail(t *testing.T) {
	repo := new(MockUserRepository)
	sender := &recordingSender{}
	uc := NewUserUsecase(repo, sender, testAuth, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return("user-1", nil)

	created, err := uc.Register(context.Background(), validUser())

	require.NoError(t, err)
	assert.Equal(t, "user-1", created.ID)
	assert.Equal(t, []string{"nimal@example.com"}, sender.sentTo)
}

func TestRegister_MailFailureDoesNotFailRegistration(t *testing.T) {
	repo := new(MockUserRepository)
	sender := &recordingSender{fail: true}
	uc := NewUserUsecase(repo, sender, testAuth, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return("user-1", nil)

	_, err := uc.Register(context.Background(), validUser())
	assert.NoError(t, err)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUsecase(repo, &recordingSender{}, testAuth, zap.NewNop())

	user := validUser()
	user.Role = "admin"
	_, err := uc.Register(context.Background(), user)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	repo.AssertNotCalled(t, "Create")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUsecase(repo, &recordingSender{}, testAuth, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return("", repository.ErrDuplicateEmail)

	_, err := uc.Register(context.Background(), validUser())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email already registered", vErr.Reason)
}

func TestLogin_IssuesTokenWithUserAndRole(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUsecase(repo, &recordingSender{}, testAuth, zap.NewNop())

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "nimal@example.com").Return(&entity.User{
		ID:       "user-1",
		Email:    "nimal@example.com",
		Password: string(hash),
		Role:     entity.RoleGuide,
	}, nil)

	token, user, err := uc.Login(context.Background(), "nimal@example.com", "correct horse")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testAuth.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.RoleGuide, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUsecase(repo, &recordingSender{}, testAuth, zap.NewNop())

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "nimal@example.com").
		Return(&entity.User{ID: "user-1", Password: string(hash)}, nil)

	_, _, err = uc.Login(context.Background(), "nimal@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUsecase(repo, &recordingSender{}, testAuth, zap.NewNop())

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, _, err := uc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
