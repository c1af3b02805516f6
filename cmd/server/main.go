package main

import (
	"os"

	"shamba-ai/backend/internal/app"
)

// @title           Shamba AI API
// @version         1.2.0
// @description     Retrieval-augmented agronomy question answering with per-user conversations.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
