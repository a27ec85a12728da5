package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleModelInfo godoc
// @Summary Model information
// @Description Describes the model serving predictions, as reported by the prediction backend
// @Tags prediction
// @Produce json
// @Success 200 {object} predictapi.ModelInfoAPIResponse
// @Failure 502 {object} map[string]string
// @Router /api/model-info [get]
func (app *App) handleModelInfo(c *gin.Context) {
	info, err := app.predictor.ModelInfo(c.Request.Context())
	if err != nil {
		app.logger.Error("failed to get model info", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get model info"})
		return
	}

	c.JSON(http.StatusOK, info)
}
