// internal/app/features/auditlogs/templates.go
package auditlogs

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "auditlogs",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
