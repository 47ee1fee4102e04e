// internal/app/features/disclosure/templates.go
package disclosure

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "disclosure",
		FS:       templateFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
