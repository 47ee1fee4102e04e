// internal/app/features/tc/templates.go
package tc

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "tc",
		FS:       templateFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
