package models

// User represents a row of the "user" table. Password holds the bcrypt hash,
// never the plaintext, and is excluded from every JSON rendering.
type User struct {
	ID                string `db:"id" json:"id"`
	Username          string `db:"username" json:"username"`
	Email             string `db:"email" json:"email"`
	Password          string `db:"password" json:"-"`
	PreferredUnits    string `db:"preferred_units" json:"preferred_units"`
	SaveSearchHistory bool   `db:"save_search_history" json:"save_search_history"`
}

// SignupRequest defines the structure for a signup request.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest defines the structure for a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthData is the data payload answered on successful signup or login.
type AuthData struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Settings is the data payload for GET /settings.
type Settings struct {
	PreferredUnits    string `db:"preferred_units" json:"preferred_units"`
	SaveSearchHistory bool   `db:"save_search_history" json:"save_search_history"`
}

// SettingsUpdate is the open field map a PATCH /settings carries. The service
// checks every key against the mutable-field allow-list before any SQL is
// assembled; unknown keys are rejected, never spliced into a statement.
type SettingsUpdate map[string]any
