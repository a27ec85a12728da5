package main

import (
	"net/http"

	"weather-predictor/internal/predict"

	"github.com/gin-gonic/gin"
)

// session returns the prediction client bound to the caller's cookie,
// starting a new session and setting the cookie when needed.
func (app *App) session(c *gin.Context) *predict.Client {
	name := app.cfg.Session.CookieName
	current, _ := c.Cookie(name)

	id, client := app.sessions.Get(c.Request.Context(), current)
	if id != current {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, id, int(app.cfg.Session.IdleTimeout.Seconds()), "/", "", false, true)
	}
	return client
}
