package main

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"weather-predictor/internal/db"

	"github.com/gin-gonic/gin"
)

const (
	minCityQuery     = 2
	maxCitySuggested = 8
)

// SearchCitiesInput defines the query parameters for the recent-city search
type SearchCitiesInput struct {
	Query string `form:"q"` // City name prefix
}

// handleCities godoc
// @Summary Recently predicted cities
// @Description Suggests cities that produced a prediction before, most looked-up first. Queries shorter than two characters return an empty list.
// @Tags cities
// @Produce json
// @Param q query string false "City name prefix" example(Ber)
// @Success 200 {array} db.RecentCity
// @Failure 500 {object} map[string]string
// @Router /api/cities [get]
func (app *App) handleCities(c *gin.Context) {
	var input SearchCitiesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefix := strings.TrimSpace(input.Query)
	if app.cities == nil || utf8.RuneCountInString(prefix) < minCityQuery {
		c.JSON(http.StatusOK, []db.RecentCity{})
		return
	}

	cities, err := app.cities.SearchCities(c.Request.Context(), prefix, maxCitySuggested)
	if err != nil {
		app.logger.Error("failed to search cities", "prefix", prefix, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search cities"})
		return
	}

	c.JSON(http.StatusOK, cities)
}
