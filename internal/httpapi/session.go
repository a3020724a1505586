package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/news"
)

func newsSettings(p PrefsPayload) news.Settings {
	return news.Settings{
		RequireWIFI:  p.RequireWIFI,
		EnableAlerts: p.EnableAlerts,
	}
}

func (s *Server) login(c *fiber.Ctx) error {
	var payload LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return validationErr(err)
	}
	if err := payload.Validate(); err != nil {
		return validationErr(err)
	}

	session, err := s.auther.Login(c.Context(), payload.Email, payload.Password, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func (s *Server) logout(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromCtx(c)
	if err := s.auther.Logout(claims, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Logged out"})
}
