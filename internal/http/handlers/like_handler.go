package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petlink/internal/log"
	"petlink/internal/services"
	"petlink/internal/validate"
)

type LikeHandler struct {
	Likes *services.LikeService
}

// POST /like-pet/:id toggles the like; both branches report the fresh total.
func (h *LikeHandler) Toggle(c *fiber.Ctx) error {
	s := sessionFrom(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, "Pet not found!")
	}

	action, count, err := h.Likes.Toggle(id, s.PrincipalID)
	if err != nil {
		log.Error(c, "like.toggle.fail", err, map[string]any{"pet_id": id})
		return jsonFail(c, "Could not update like.")
	}
	log.Info(c, "like."+action, map[string]any{"pet_id": id})
	return jsonOK(c, "Pet "+action+" successfully!", fiber.Map{
		"action":     action,
		"like_count": count,
	})
}
