// filepath: cmd/blog/main.go
package main

import (
	"blog/internal/cli"

	// Import docs for Swagger
	_ "blog/docs"
)

// @title Blog API
// @version 1.0.0
// @description Read-only JSON API of the blog: posts with likes and comments, and service info.
// @BasePath /api
// @schemes http

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
