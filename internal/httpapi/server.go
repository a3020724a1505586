// Package httpapi is the fiber transport over the mutation engine: route
// wiring, payload validation at the boundary, and mapping of domain failures
// onto HTTP statuses. Handlers stay thin; every decision that matters lives
// in the engine or the guard.
package httpapi

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/engine"
)

// Server owns the fiber app and its collaborators.
type Server struct {
	app    *fiber.App
	engine *engine.Engine
	auther *auth.Authenticator
	tokens *auth.TokenService
	logger auth.Logger
}

// New builds the app and mounts all routes. The guard protects everything
// except registration, login and the public feeds.
func New(eng *engine.Engine, auther *auth.Authenticator, tokens *auth.TokenService, logger auth.Logger) *Server {
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	s := &Server{
		engine: eng,
		auther: auther,
		tokens: tokens,
		logger: logger,
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	s.routes()
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	guard := auth.Guard(s.tokens)
	api := s.app.Group("/api")

	users := api.Group("/users")
	users.Post("/", s.registerUser)
	users.Delete("/:id", guard, s.deleteUser)
	users.Get("/:id", guard, s.getProfile)
	users.Put("/:id", guard, s.updatePrefs)
	users.Post("/:id/savedstories", guard, s.saveStory)
	users.Delete("/:id/savedstories/:sid", guard, s.removeSavedStory)

	sessions := api.Group("/sessions")
	sessions.Post("/", s.login)
	sessions.Delete("/:id", guard, s.logout)

	shared := api.Group("/sharednews")
	shared.Get("/", guard, s.listShared)
	shared.Post("/", guard, s.shareStory)
	shared.Delete("/:sid", guard, s.deleteShared)
	shared.Post("/:sid/comments", guard, s.addComment)

	api.Get("/homenews", s.homeNews)
}

// errorHandler translates failures into JSON responses: rich errors carry
// their own HTTP code, fiber errors keep theirs, anything else is a 500.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		status := richErr.Code
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"message": richErr.Message,
			"code":    richErr.TextCode,
		})
	}

	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	s.logger.Error("unhandled request error on %s: %v", c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
