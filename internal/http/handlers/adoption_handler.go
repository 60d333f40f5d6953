package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petlink/internal/log"
	"petlink/internal/repos"
	"petlink/internal/services"
	"petlink/internal/validate"
)

type AdoptionHandler struct {
	Adoption *services.AdoptionService
}

type requestBody struct {
	Message string `json:"message"`
}

// POST /request-adoption/:pet_id
func (h *AdoptionHandler) Request(c *fiber.Ctx) error {
	s := sessionFrom(c)
	petID, ok := validate.ID(c.Params("pet_id"))
	if !ok {
		return jsonFail(c, "Pet not found!")
	}

	var body requestBody
	_ = c.BodyParser(&body) // empty body is fine; a stock message is used

	if err := h.Adoption.Request(s.PrincipalID, petID, body.Message); err != nil {
		if errors.Is(err, repos.ErrDuplicateRequest) {
			return jsonFail(c, "You have already requested this pet.")
		}
		log.Error(c, "adoption.request.fail", err, map[string]any{"pet_id": petID})
		return jsonFail(c, "Could not send request.")
	}
	log.Audit(c, "adoption.request", map[string]any{"pet_id": petID})
	return jsonOK(c, "Request sent successfully to owner!", nil)
}
