// internal/app/features/news/templates.go
package news

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "news",
		FS:       templateFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
