package main

import (
	"bytes"
	"net/http"

	"weather-predictor/internal/view"
	"weather-predictor/internal/web"

	"github.com/gin-gonic/gin"
)

// SubmitFormInput is the prediction form. City is checked by the
// prediction client so a blank value renders the inline message.
type SubmitFormInput struct {
	City string `form:"city"`
}

// handleIndex renders the page in the session's current state
func (app *App) handleIndex(c *gin.Context) {
	client := app.session(c)
	app.renderPage(c, view.Render(client.State()), "")
}

// handleSubmitForm runs a prediction from a plain form post and renders the settled page
func (app *App) handleSubmitForm(c *gin.Context) {
	var input SubmitFormInput
	if err := c.ShouldBind(&input); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	client := app.session(c)
	state := client.Submit(c.Request.Context(), input.City)
	app.renderPage(c, view.Render(state), input.City)
}

func (app *App) renderPage(c *gin.Context, display view.Display, city string) {
	var buf bytes.Buffer
	if err := web.RenderPage(&buf, web.Page{Display: display, City: city}); err != nil {
		app.logger.Error("failed to render page", "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
