package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"weatherapp/server/internal/api/models"
	"weatherapp/server/internal/api/response"
	"weatherapp/server/internal/api/service"
	"weatherapp/server/internal/auth"
	"weatherapp/server/internal/validator"
)

// LocationController handles the saved-location and search-history endpoints.
type LocationController struct {
	locationService service.LocationService
}

// NewLocationController creates a new LocationController.
func NewLocationController(locationService service.LocationService) *LocationController {
	return &LocationController{
		locationService: locationService,
	}
}

// SaveLocation handles POST /location.
func (lc *LocationController) SaveLocation(c *gin.Context) {
	lc.append(c, models.KindSavedLocation, "location saved successfully")
}

// AddSearchHistory handles POST /searchHistory.
func (lc *LocationController) AddSearchHistory(c *gin.Context) {
	lc.append(c, models.KindSearchHistory, "search history added successfully")
}

func (lc *LocationController) append(c *gin.Context, kind, message string) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.AbortUnauthorized(c, "no token provided")
		return
	}

	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	loc, err := lc.locationService.Append(c.Request.Context(), userID, &req, kind)
	if err != nil {
		slog.Error("failed to append location", "error", err, "kind", kind, "user_id", userID)
		response.Error(c, err)
		return
	}

	response.OK(c, message, models.RecordData{ID: loc.ID})
}

// ListSaved handles GET /location. An account with nothing saved gets an
// empty list, not an error.
func (lc *LocationController) ListSaved(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.AbortUnauthorized(c, "no token provided")
		return
	}

	locations, err := lc.locationService.List(c.Request.Context(), userID, models.KindSavedLocation)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "locations retrieved successfully", locations)
}

// ListSearchHistory handles GET /searchHistory, newest first. An empty
// history answers a 404 envelope; clients key off that asymmetry with
// GET /location.
func (lc *LocationController) ListSearchHistory(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.AbortUnauthorized(c, "no token provided")
		return
	}

	locations, err := lc.locationService.List(c.Request.Context(), userID, models.KindSearchHistory)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(locations) == 0 {
		response.Fail(c, http.StatusNotFound, "no search history found")
		return
	}

	response.OK(c, "search history retrieved successfully", locations)
}

// DeleteSaved handles DELETE /location. The target is named by query
// parameters and matched exactly across every field.
func (lc *LocationController) DeleteSaved(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.AbortUnauthorized(c, "no token provided")
		return
	}

	q, ok := bindLocationQuery(c)
	if !ok {
		return
	}

	if err := lc.locationService.DeleteSaved(c.Request.Context(), userID, q); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "location deleted successfully")
}

// IsLocationSaved handles GET /location/isLocationSaved. The data payload is
// present only when a matching saved location exists.
func (lc *LocationController) IsLocationSaved(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.AbortUnauthorized(c, "no token provided")
		return
	}

	q, ok := bindLocationQuery(c)
	if !ok {
		return
	}

	loc, err := lc.locationService.IsSaved(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	if loc == nil {
		response.OKMessage(c, "location is not saved")
		return
	}

	response.OK(c, "location is saved", loc)
}

func bindLocationQuery(c *gin.Context) (models.LocationQuery, bool) {
	var q models.LocationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return q, false
	}
	if err := validator.GetValidator().Struct(q); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return q, false
	}
	return q, true
}
