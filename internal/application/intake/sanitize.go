package intake

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// stripPolicy elimina toda etiqueta y conserva solo el texto.
var stripPolicy = bluemonday.StrictPolicy()

// sanitizeText quita etiquetas, decodifica entidades, normaliza a NFC y recorta espacios.
func sanitizeText(s string) string {
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(norm.NFC.String(s))
}

// sanitizeEmail email en minúsculas y sin espacios.
func sanitizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
