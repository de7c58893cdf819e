package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/jobboard-api/pkg/config"
)

// ServerOptions opciones del servidor además de las rutas.
type ServerOptions struct {
	AppName string
	HTTP    config.HTTPConfig
	// SwaggerFile ruta al swagger.json; vacío = sin /docs.
	SwaggerFile string
}

// NewServer construye la app Fiber con middlewares globales, /health y las rutas de la API.
func NewServer(opts ServerOptions, deps RouterDeps) *fiber.App {
	bodyLimit := opts.HTTP.BodyLimitMB << 20
	if bodyLimit <= 0 {
		bodyLimit = 8 << 20
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler(deps.Log),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI antes de las cabeceras: la CSP de la API bloquearía sus scripts.
	if opts.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: opts.SwaggerFile,
			Path:     "docs",
			Title:    opts.AppName,
		}))
	}

	app.Use(SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(opts.HTTP.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.AppName})
	})

	Router(app, deps)
	return app
}

func corsOrigins(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "*"
	}
	return raw
}
