package handler

import (
	"io/fs"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
)

const serviceName = "watchlist-foodlens"

// AppOptions configures NewApp.
type AppOptions struct {
	BodyLimit   int
	AccessLog   bool
	SwaggerYAML []byte // nil disables the docs routes
	Assets      fs.FS  // nil disables the front end
}

// NewApp creates the Fiber app with middleware and every route registered.
func NewApp(opts AppOptions, movies *MovieHandler, analysis *AnalysisHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Watchlist Foodlens",
		ServerHeader: "Watchlist-Foodlens",
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	if opts.SwaggerYAML != nil {
		RegisterSwagger(app, opts.SwaggerYAML)
	}

	api := app.Group("/api")
	api.Get("/health", Health)

	api.Post("/movies", movies.CreateMovie)
	api.Get("/movies", movies.ListMovies)
	api.Get("/movies/:id", movies.GetMovie)
	api.Put("/movies/:id", movies.UpdateMovie)
	api.Delete("/movies/:id", movies.DeleteMovie)

	api.Post("/analyze-image", analysis.AnalyzeImage)
	api.Post("/food/analyze-image", analysis.AnalyzeImage)

	if opts.Assets != nil {
		app.Get("/*", static.New("", static.Config{FS: opts.Assets}))
	}

	return app
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": serviceName,
	})
}
