package main

import (
	"net/http"

	"weather-predictor/internal/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Page
	app.router.GET("/", app.handleIndex)
	app.router.POST("/", app.handleSubmitForm)
	app.router.StaticFS("/static", http.FS(web.Static()))

	// JSON API
	api := app.router.Group("/api")
	api.POST("/predict", app.handlePredict)
	api.GET("/state", app.handleState)
	api.GET("/model-info", app.handleModelInfo)
	api.GET("/cities", app.handleCities)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
