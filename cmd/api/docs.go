package main

// @title Weather Predictor API
// @version 1.0
// @description Web front end for the weather prediction backend. Serves the prediction page and a JSON API that mirrors it.

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:8080
// @BasePath /
