package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.924 generate

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const (
	// Brand is printed in the copyright line of every message.
	Brand = "Sistema de Correos Corporativos"

	headerTitle    = "Correo Corporativo"
	headerSubtitle = "Sistema de comunicación profesional"
	bodyHeading    = "Mensaje:"
	demoNotice     = "Este es un correo de demostración"
	demoSource     = "Enviado desde el sistema de correos corporativos"
)

// Body is the data shared by both representations of the corporate email.
// HTML is declared in corporate.templ.
type Body struct {
	Message string
	Year    int
}

// Text renders the plain-text equivalent. The message is written verbatim.
func Text(b Body) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts := []string{
			headerTitle, " - ", headerSubtitle, "\n\n",
			bodyHeading, "\n",
			b.Message, "\n\n",
			"---\n",
			demoNotice, "\n",
			demoSource, "\n\n",
			"© ", strconv.Itoa(b.Year), " ", Brand, "\n",
		}
		for _, p := range parts {
			if _, err := io.WriteString(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}
