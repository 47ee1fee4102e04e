// internal/app/features/academics/templates.go
package academics

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "academics",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
