package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/repository"
	"github.com/sevendays/diary-core/internal/schedule"
)

const passwordMinLen = 8

// IdentityService — регистрация и проверка учётных данных.
type IdentityService struct {
	users repository.UserRepository
}

func NewIdentityService(users repository.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// RegisterParams — данные нового пользователя.
type RegisterParams struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	Role      model.UserRole
}

// Register создаёт пользователя с bcrypt-хэшем пароля.
func (s *IdentityService) Register(ctx context.Context, p RegisterParams, now time.Time) (*model.User, error) {
	if errs := validateRegisterParams(p); errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	if _, err := s.users.GetByEmail(ctx, p.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := p.Role
	if role == "" {
		role = model.UserRoleStandard
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        repository.NormalizeEmail(p.Email),
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate проверяет пару email/пароль. Несуществующий email и
// неверный пароль дают одну и ту же ошибку.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func validateRegisterParams(p RegisterParams) schedule.ValidationErrors {
	errs := schedule.ValidationErrors{}
	if p.Email == "" {
		errs.Add("email", "can't be blank")
	}
	if p.Username == "" {
		errs.Add("username", "can't be blank")
	} else if len(p.Username) > 20 {
		errs.Add("username", "must be at most 20 characters")
	}
	if p.FirstName == "" {
		errs.Add("first_name", "can't be blank")
	}
	if p.LastName == "" {
		errs.Add("last_name", "can't be blank")
	}
	if len(p.Password) < passwordMinLen {
		errs.Add("password", "must be at least 8 characters")
	}
	if p.Role != "" && p.Role != model.UserRoleOwner && p.Role != model.UserRoleStandard {
		errs.Add("role", "is not a valid role")
	}
	return errs
}
