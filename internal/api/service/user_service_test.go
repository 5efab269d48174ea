package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"weatherapp/server/internal/api/apperror"
	"weatherapp/server/internal/api/models"
	"weatherapp/server/internal/auth"
	"weatherapp/server/internal/config"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	users       map[string]*models.User
	lastUpdate  map[string]any
	lastUpdated string
	createErr   error
	updateErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.users[user.Email]; exists {
		return apperror.NewDuplicateEmail("user with email already exists")
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) UpdatePartial(_ context.Context, userID string, fields map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastUpdated = userID
	f.lastUpdate = fields
	return nil
}

func (f *fakeUserRepo) GetSettings(_ context.Context, userID string) (*models.Settings, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return &models.Settings{PreferredUnits: u.PreferredUnits, SaveSearchHistory: u.SaveSearchHistory}, nil
		}
	}
	return nil, apperror.NewNotFound("user not found")
}

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 24 * time.Hour})
}

func TestUserService_Signup(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newTestTokens()
	s := NewUserService(repo, tokens)

	data, err := s.Signup(context.Background(), &models.SignupRequest{
		Username: "ann",
		Email:    "Ann@X.com",
		Password: "p1",
	})
	if err != nil {
		t.Fatalf("Signup() returned error: %v", err)
	}
	if data.Username != "ann" {
		t.Errorf("Signup() username = %q, want %q", data.Username, "ann")
	}

	stored := repo.users["ann@x.com"]
	if stored == nil {
		t.Fatal("Signup() did not store user under lowercased email")
	}
	if stored.ID == "" {
		t.Error("Signup() did not assign a user id")
	}
	if stored.Password == "p1" {
		t.Error("Signup() stored the plaintext password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("p1")); err != nil {
		t.Errorf("stored password is not a valid bcrypt hash of the input: %v", err)
	}
	if stored.PreferredUnits != "metric" || !stored.SaveSearchHistory {
		t.Errorf("Signup() defaults = (%q, %v), want (metric, true)", stored.PreferredUnits, stored.SaveSearchHistory)
	}

	// Token must decode back to the new user's id.
	userID, err := tokens.Verify(data.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if userID != stored.ID {
		t.Errorf("token carries user id %q, want %q", userID, stored.ID)
	}
}

func TestUserService_SignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo, newTestTokens())

	req := &models.SignupRequest{Username: "ann", Email: "ann@x.com", Password: "p1"}
	if _, err := s.Signup(context.Background(), req); err != nil {
		t.Fatalf("first Signup() returned error: %v", err)
	}

	_, err := s.Signup(context.Background(), req)
	if !apperror.IsKind(err, apperror.DuplicateEmail) {
		t.Errorf("second Signup() error = %v, want DuplicateEmail", err)
	}
}

func TestUserService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newTestTokens()
	s := NewUserService(repo, tokens)

	if _, err := s.Signup(context.Background(), &models.SignupRequest{
		Username: "ann", Email: "ann@x.com", Password: "p1",
	}); err != nil {
		t.Fatalf("Signup() returned error: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantAuth bool
	}{
		{name: "correct credentials", email: "ann@x.com", password: "p1"},
		{name: "uppercased email still matches", email: "ANN@X.COM", password: "p1"},
		{name: "wrong password", email: "ann@x.com", password: "p2", wantAuth: true},
		{name: "unknown email", email: "bob@x.com", password: "p1", wantAuth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := s.Login(context.Background(), &models.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantAuth {
				if !apperror.IsKind(err, apperror.Auth) {
					t.Errorf("Login() error = %v, want Auth", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() returned error: %v", err)
			}
			if _, err := tokens.Verify(data.Token); err != nil {
				t.Errorf("issued token failed verification: %v", err)
			}
		})
	}
}

func TestUserService_UpdateSettingsAllowList(t *testing.T) {
	tests := []struct {
		name    string
		update  models.SettingsUpdate
		wantErr bool
	}{
		{
			name:   "allowed fields",
			update: models.SettingsUpdate{"preferred_units": "imperial", "save_search_history": false},
		},
		{
			name:   "username and email",
			update: models.SettingsUpdate{"username": "bob", "email": "Bob@X.com"},
		},
		{
			name:    "empty update",
			update:  models.SettingsUpdate{},
			wantErr: true,
		},
		{
			name:    "identity column smuggled in",
			update:  models.SettingsUpdate{"id": "other-user", "username": "bob"},
			wantErr: true,
		},
		{
			name:    "unknown field",
			update:  models.SettingsUpdate{"is_admin": true},
			wantErr: true,
		},
		{
			name:    "wrong type for save_search_history",
			update:  models.SettingsUpdate{"save_search_history": "yes"},
			wantErr: true,
		},
		{
			name:    "empty string value",
			update:  models.SettingsUpdate{"username": ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			s := NewUserService(repo, newTestTokens())

			err := s.UpdateSettings(context.Background(), "user-123", tt.update)
			if tt.wantErr {
				if !apperror.IsKind(err, apperror.Validation) {
					t.Errorf("UpdateSettings() error = %v, want Validation", err)
				}
				if repo.lastUpdate != nil {
					t.Error("rejected update still reached the repository")
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateSettings() returned error: %v", err)
			}
			if repo.lastUpdated != "user-123" {
				t.Errorf("UpdatePartial() called for %q, want user-123", repo.lastUpdated)
			}
			if _, present := repo.lastUpdate["id"]; present {
				t.Error("identity column reached the repository")
			}
		})
	}
}

func TestUserService_UpdateSettingsHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo, newTestTokens())

	if err := s.UpdateSettings(context.Background(), "user-123", models.SettingsUpdate{"password": "newpass"}); err != nil {
		t.Fatalf("UpdateSettings() returned error: %v", err)
	}

	hashed, ok := repo.lastUpdate["password"].(string)
	if !ok {
		t.Fatal("password field missing from repository update")
	}
	if hashed == "newpass" {
		t.Fatal("UpdateSettings() passed the plaintext password to the repository")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("newpass")); err != nil {
		t.Errorf("updated password is not a valid bcrypt hash: %v", err)
	}
}

func TestUserService_UpdateSettingsLowercasesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo, newTestTokens())

	if err := s.UpdateSettings(context.Background(), "user-123", models.SettingsUpdate{"email": "Ann@X.com"}); err != nil {
		t.Fatalf("UpdateSettings() returned error: %v", err)
	}
	if got := repo.lastUpdate["email"]; got != "ann@x.com" {
		t.Errorf("email passed to repository = %v, want ann@x.com", got)
	}
}
