package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"petlink/internal/log"
	"petlink/internal/services"
	"petlink/internal/validate"
)

type PetHandler struct {
	Catalog *services.CatalogService
}

// GET /
func (h *PetHandler) Home(c *fiber.Ctx) error {
	pets, err := h.Catalog.HomeFeed(viewerID(c))
	if err != nil {
		log.Error(c, "home.feed.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	return render(c, "index", fiber.Map{"Pets": pets})
}

// GET /adopt?category=
func (h *PetHandler) Adopt(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))

	cats, err := h.Catalog.ListCategories()
	if err != nil {
		log.Error(c, "adopt.categories.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	pets, err := h.Catalog.AdoptListing(viewerID(c), category)
	if err != nil {
		log.Error(c, "adopt.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	return render(c, "adopt", fiber.Map{
		"Pets": pets, "Categories": cats, "SelectedCategory": category,
	})
}

// GET /pet/:id
func (h *PetHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		flash(c, "Pet not found!")
		return c.Redirect("/adopt")
	}
	pet, err := h.Catalog.PetDetail(id, viewerID(c))
	if err != nil {
		flash(c, "Pet not found!")
		return c.Redirect("/adopt")
	}
	return render(c, "pet_detail", fiber.Map{"Pet": pet})
}

// GET /search_pets?q=&status=  (JSON)
func (h *PetHandler) Search(c *fiber.Ctx) error {
	rawQ := strings.TrimSpace(c.Query("q"))
	q := ""
	if rawQ != "" {
		var ok bool
		if q, ok = validate.Q(rawQ); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
		}
	}
	status, ok := validate.SearchStatus(c.Query("status"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "status"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status filter"})
	}

	pets, err := h.Catalog.Search(q, status)
	if err != nil {
		log.Error(c, "search.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}

	results := make([]fiber.Map, 0, len(pets))
	for _, p := range pets {
		results = append(results, fiber.Map{
			"id":              p.ID,
			"name":            p.Name,
			"breed":           p.Breed,
			"age":             p.Age,
			"category_name":   p.CategoryName,
			"adoption_status": p.AdoptionStatus,
			"image_url":       p.ImageURL,
			"health_details":  p.HealthDetails,
			"like_count":      p.LikeCount,
		})
	}
	return c.JSON(results)
}
