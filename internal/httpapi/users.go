package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/engine"
)

func (s *Server) registerUser(c *fiber.Ctx) error {
	var payload RegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return validationErr(err)
	}
	if err := payload.Validate(); err != nil {
		return validationErr(err)
	}

	user, err := s.engine.Register(c.Context(), engine.RegisterInput{
		Email:       payload.Email,
		DisplayName: payload.DisplayName,
		Password:    payload.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) deleteUser(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromCtx(c)
	if err := s.engine.DeleteAccount(c.Context(), claims, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromCtx(c)
	profile, err := s.engine.Profile(c.Context(), claims, c.Params("id"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	return c.JSON(profile)
}

func (s *Server) updatePrefs(c *fiber.Ctx) error {
	var payload PrefsPayload
	if err := c.BodyParser(&payload); err != nil {
		return validationErr(err)
	}
	if err := payload.Validate(); err != nil {
		return validationErr(err)
	}

	claims, _ := auth.ClaimsFromCtx(c)
	settings := newsSettings(payload)

	updated, err := s.engine.UpdatePrefs(c.Context(), claims, c.Params("id"), settings, payload.toFilters())
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (s *Server) saveStory(c *fiber.Ctx) error {
	var payload StoryPayload
	if err := c.BodyParser(&payload); err != nil {
		return validationErr(err)
	}
	if err := payload.Validate(); err != nil {
		return validationErr(err)
	}

	claims, _ := auth.ClaimsFromCtx(c)
	if err := s.engine.SaveStory(c.Context(), claims, c.Params("id"), payload.toStory()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Story saved"})
}

func (s *Server) removeSavedStory(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromCtx(c)
	updated, err := s.engine.RemoveSavedStory(c.Context(), claims, c.Params("id"), c.Params("sid"))
	if err != nil {
		return err
	}
	return c.JSON(updated)
}
