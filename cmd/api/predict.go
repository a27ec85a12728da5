package main

import (
	"net/http"

	"weather-predictor/internal/view"

	"github.com/gin-gonic/gin"
)

// PredictInput is the JSON body of a prediction request
type PredictInput struct {
	City string `json:"city" example:"Berlin"` // City to predict for
}

// handlePredict godoc
// @Summary Predict tomorrow's temperature
// @Description Runs a prediction for the caller's session and returns the values the page displays. Validation, backend and network failures are reported in the display itself.
// @Tags prediction
// @Accept json
// @Produce json
// @Param request body PredictInput true "City to predict for"
// @Success 200 {object} view.Display
// @Failure 400 {object} map[string]string
// @Router /api/predict [post]
func (app *App) handlePredict(c *gin.Context) {
	var input PredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := app.session(c)
	state := client.Submit(c.Request.Context(), input.City)

	c.JSON(http.StatusOK, view.Render(state))
}

// handleState godoc
// @Summary Current display
// @Description Returns what the caller's session is currently displaying. Callers without a session get the idle display.
// @Tags prediction
// @Produce json
// @Success 200 {object} view.Display
// @Router /api/state [get]
func (app *App) handleState(c *gin.Context) {
	current, _ := c.Cookie(app.cfg.Session.CookieName)
	client, ok := app.sessions.Lookup(current)
	if !ok {
		c.JSON(http.StatusOK, view.Render(view.Idle()))
		return
	}
	c.JSON(http.StatusOK, view.Render(client.State()))
}
