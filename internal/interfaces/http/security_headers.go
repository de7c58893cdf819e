package http

import "github.com/gofiber/fiber/v2"

// SecurityHeaders cabeceras de seguridad en todas las respuestas.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "no-referrer-when-downgrade")
		c.Set("Permissions-Policy", "fullscreen=()")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; form-action 'self'; base-uri 'self';")
		return c.Next()
	}
}
