package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"weatherapp/server/internal/api/apperror"
	"weatherapp/server/internal/api/models"
	"weatherapp/server/internal/api/repository"
	"weatherapp/server/internal/auth"
)

const defaultUnits = "metric"

// UserService defines the interface for account and settings business logic.
type UserService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthData, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthData, error)
	UpdateSettings(ctx context.Context, userID string, update models.SettingsUpdate) error
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

// Signup registers a new account and signs it in. Duplicate emails surface
// as the typed DuplicateEmail error straight from the store's unique
// constraint; there is no pre-insert existence check to race against.
func (s *userService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthData, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:                uuid.New().String(),
		Username:          req.Username,
		Email:             strings.ToLower(req.Email),
		Password:          string(hashed),
		PreferredUnits:    defaultUnits,
		SaveSearchHistory: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthData{Username: user.Username, Token: token}, nil
}

// Login verifies the credentials and returns a fresh token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthData, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewAuth("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuth("invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthData{Username: user.Username, Token: token}, nil
}

// UpdateSettings applies a partial settings update. Every key must be on the
// mutable-field allow-list with a value of the right type; the identity
// column is not on the list and can never be touched. Password values are
// hashed before they reach the store.
func (s *userService) UpdateSettings(ctx context.Context, userID string, update models.SettingsUpdate) error {
	if len(update) == 0 {
		return apperror.NewValidation("no fields to update")
	}

	fields := make(map[string]any, len(update))
	for key, value := range update {
		switch key {
		case "username", "preferred_units":
			str, ok := value.(string)
			if !ok || str == "" {
				return apperror.NewValidation(fmt.Sprintf("%s must be a non-empty string", key))
			}
			fields[key] = str
		case "email":
			str, ok := value.(string)
			if !ok || str == "" {
				return apperror.NewValidation("email must be a non-empty string")
			}
			fields[key] = strings.ToLower(str)
		case "password":
			str, ok := value.(string)
			if !ok || str == "" {
				return apperror.NewValidation("password must be a non-empty string")
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(str), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fields[key] = string(hashed)
		case "save_search_history":
			b, ok := value.(bool)
			if !ok {
				return apperror.NewValidation("save_search_history must be a boolean")
			}
			fields[key] = b
		default:
			return apperror.NewValidation(fmt.Sprintf("field %q is not updatable", key))
		}
	}

	return s.userRepo.UpdatePartial(ctx, userID, fields)
}

// GetSettings reads the caller's preference fields.
func (s *userService) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	return s.userRepo.GetSettings(ctx, userID)
}
