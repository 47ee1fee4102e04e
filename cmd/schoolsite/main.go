// cmd/schoolsite/main.go
package main

import (
	"context"
	"os"

	"github.com/brightland/schoolsite/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		// Error already logged by WAFFLE
		os.Exit(1)
	}
}
