package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petlink/internal/domain"
	"petlink/internal/log"
	"petlink/internal/services"
	"petlink/internal/validate"
)

type OwnerHandler struct {
	Shelter   *services.ShelterService
	Adoption  *services.AdoptionService
	Analytics *services.AnalyticsService
	Catalog   *services.CatalogService
}

// GET /owner-dashboard
func (h *OwnerHandler) Dashboard(c *fiber.Ctx) error {
	s := sessionFrom(c)

	pets, err := h.Shelter.ListPets(s.PrincipalID)
	if err != nil {
		log.Error(c, "dashboard.pets.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	reqs, err := h.Adoption.RequestsForOwner(s.PrincipalID)
	if err != nil {
		log.Error(c, "dashboard.requests.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	stats, err := h.Analytics.DashboardStats(s.PrincipalID)
	if err != nil {
		log.Error(c, "dashboard.stats.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	topPets, err := h.Analytics.DashboardTopPets(s.PrincipalID)
	if err != nil {
		log.Error(c, "dashboard.toppets.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	activity, err := h.Analytics.RecentActivity(s.PrincipalID)
	if err != nil {
		log.Error(c, "dashboard.activity.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		log.Error(c, "dashboard.categories.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}

	return render(c, "owner_dashboard", fiber.Map{
		"Pets":       pets,
		"Requests":   reqs,
		"Stats":      stats,
		"TopPets":    topPets,
		"Activity":   activity,
		"Categories": cats,
	})
}

// GET /owner-dashboard/analytics  (JSON)
func (h *OwnerHandler) AnalyticsJSON(c *fiber.Ctx) error {
	s := sessionFrom(c)
	if !s.IsOwner() {
		log.Security(c, "access.denied.analytics", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	rpt, err := h.Analytics.BuildReport(s.PrincipalID)
	if err != nil {
		log.Error(c, "analytics.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not build analytics"})
	}
	return c.JSON(rpt)
}

// petPayload is the JSON body of add-pet and update-pet.
type petPayload struct {
	Name           string `json:"name"`
	CategoryID     int64  `json:"category_id"`
	Breed          string `json:"breed"`
	Age            int    `json:"age"`
	HealthDetails  string `json:"health_details"`
	MedicalDetails string `json:"medical_details"`
	ImageURL       string `json:"image_url"`
	AdoptionStatus string `json:"adoption_status"`
}

func (p petPayload) toPet() domain.Pet {
	return domain.Pet{
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		Breed:          p.Breed,
		Age:            p.Age,
		HealthDetails:  p.HealthDetails,
		MedicalDetails: p.MedicalDetails,
		ImageURL:       p.ImageURL,
		AdoptionStatus: p.AdoptionStatus,
	}
}

func (p petPayload) valid(needStatus bool) bool {
	if p.Name == "" || p.CategoryID < 1 || p.Breed == "" || p.Age < 0 ||
		p.HealthDetails == "" || p.MedicalDetails == "" || p.ImageURL == "" {
		return false
	}
	if needStatus {
		if _, ok := validate.PetStatus(p.AdoptionStatus); !ok {
			return false
		}
	}
	return true
}

// POST /add-pet
func (h *OwnerHandler) AddPet(c *fiber.Ctx) error {
	s := sessionFrom(c)
	var body petPayload
	if err := c.BodyParser(&body); err != nil || !body.valid(false) {
		return jsonFail(c, "All pet fields are required.")
	}

	id, err := h.Shelter.AddPet(s.PrincipalID, body.toPet())
	if err != nil {
		log.Error(c, "pet.add.fail", err, nil)
		return jsonFail(c, "Could not add pet.")
	}
	log.Audit(c, "pet.add", map[string]any{"pet_id": id})
	return jsonOK(c, "Pet added successfully!", fiber.Map{"pet_id": id})
}

// POST /update-pet/:id
func (h *OwnerHandler) UpdatePet(c *fiber.Ctx) error {
	s := sessionFrom(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, "Invalid pet id.")
	}
	var body petPayload
	if err := c.BodyParser(&body); err != nil || !body.valid(true) {
		return jsonFail(c, "All pet fields are required.")
	}

	if err := h.Shelter.UpdatePet(id, s.PrincipalID, body.toPet()); err != nil {
		if errors.Is(err, services.ErrNotYourPet) {
			log.Security(c, "pet.update.denied", map[string]any{"pet_id": id})
			return jsonFail(c, "Pet not found or not yours.")
		}
		log.Error(c, "pet.update.fail", err, map[string]any{"pet_id": id})
		return jsonFail(c, "Could not update pet.")
	}
	log.Audit(c, "pet.update", map[string]any{"pet_id": id})
	return jsonOK(c, "Pet updated successfully!", nil)
}

// POST /delete-pet/:id
func (h *OwnerHandler) DeletePet(c *fiber.Ctx) error {
	s := sessionFrom(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, "Invalid pet id.")
	}

	if err := h.Shelter.DeletePet(id, s.PrincipalID); err != nil {
		if errors.Is(err, services.ErrNotYourPet) {
			log.Security(c, "pet.delete.denied", map[string]any{"pet_id": id})
			return jsonFail(c, "Pet not found or not yours.")
		}
		log.Error(c, "pet.delete.fail", err, map[string]any{"pet_id": id})
		return jsonFail(c, "Could not delete pet.")
	}
	log.Audit(c, "pet.delete", map[string]any{"pet_id": id})
	return jsonOK(c, "Pet deleted successfully!", nil)
}

type statusBody struct {
	Status string `json:"status"`
}

// POST /update-request-status/:id
func (h *OwnerHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	s := sessionFrom(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, "Invalid request id.")
	}
	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return jsonFail(c, "Invalid request body.")
	}
	status, ok := validate.RequestStatus(body.Status)
	if !ok {
		return jsonFail(c, "Status must be approved or rejected.")
	}

	if err := h.Adoption.Decide(id, s.PrincipalID, status); err != nil {
		if errors.Is(err, services.ErrNotDecidable) {
			log.Security(c, "request.decide.denied", map[string]any{"request_id": id})
			return jsonFail(c, "Request not found or already decided.")
		}
		log.Error(c, "request.decide.fail", err, map[string]any{"request_id": id})
		return jsonFail(c, "Could not update request.")
	}
	log.Audit(c, "request.decide", map[string]any{"request_id": id, "status": status})
	return jsonOK(c, "Request "+status+" successfully!", nil)
}
