package models

import "time"

// Location kinds. Both record kinds share the locations table and are told
// apart by the type column.
const (
	KindSavedLocation = "savedLocation"
	KindSearchHistory = "searchHistory"
)

// Location represents a row of the locations table.
type Location struct {
	ID         string    `db:"id" json:"id"`
	Latitude   float64   `db:"latitude" json:"latitude"`
	Longitude  float64   `db:"longitude" json:"longitude"`
	Name       string    `db:"name" json:"name"`
	Country    string    `db:"country" json:"country"`
	Timezone   string    `db:"timezone" json:"timezone"`
	UserID     string    `db:"user_id" json:"user_id"`
	Type       string    `db:"type" json:"type"`
	CreateTime time.Time `db:"create_time" json:"create_time"`
}

// LocationRequest is the JSON body for POST /location and POST /searchHistory.
// Zero coordinates and empty descriptor fields are rejected by binding.
type LocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Country   string  `json:"country" binding:"required"`
	Timezone  string  `json:"timezone" binding:"required"`
}

// LocationQuery carries the same fields as query parameters, used by
// DELETE /location and GET /location/isLocationSaved. Matching is exact
// across every field, coordinates included.
type LocationQuery struct {
	Latitude  float64 `form:"latitude" validate:"required"`
	Longitude float64 `form:"longitude" validate:"required"`
	Name      string  `form:"name" validate:"required"`
	Country   string  `form:"country" validate:"required"`
	Timezone  string  `form:"timezone" validate:"required"`
}

// RecordData is the data payload answered when a location row is created.
// Exposing the id lets clients delete by identifier instead of replaying
// the full field tuple.
type RecordData struct {
	ID string `json:"id"`
}
