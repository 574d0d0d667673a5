package main

import (
	"os"

	"llamachat/internal/app"
)

// @title           Llama Chat API
// @version         1.0
// @description     Session controller for a browser chat client backed by an OpenAI-compatible completion endpoint.
// @host            localhost:8000
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
