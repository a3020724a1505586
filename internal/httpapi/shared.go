package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-newswatch/internal/auth"
)

func (s *Server) listShared(c *fiber.Ctx) error {
	stories, err := s.engine.ListShared(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stories)
}

func (s *Server) shareStory(c *fiber.Ctx) error {
	var payload StoryPayload
	if err := c.BodyParser(&payload); err != nil {
		return validationErr(err)
	}
	if err := payload.Validate(); err != nil {
		return validationErr(err)
	}

	claims, _ := auth.ClaimsFromCtx(c)
	shared, err := s.engine.ShareStory(c.Context(), claims, payload.toStory())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(shared)
}

func (s *Server) deleteShared(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromCtx(c)
	if err := s.engine.DeleteShared(c.Context(), claims, c.Params("sid")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Shared story deleted"})
}

func (s *Server) addComment(c *fiber.Ctx) error {
	var payload CommentPayload
	if err := c.BodyParser(&payload); err != nil {
		return validationErr(err)
	}
	if err := payload.Validate(); err != nil {
		return validationErr(err)
	}

	claims, _ := auth.ClaimsFromCtx(c)
	if err := s.engine.AddComment(c.Context(), claims, c.Params("sid"), payload.Comment); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"msg": "Comment added"})
}

func (s *Server) homeNews(c *fiber.Ctx) error {
	stories, err := s.engine.HomeNews(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stories)
}
