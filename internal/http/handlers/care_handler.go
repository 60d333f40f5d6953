package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"petlink/internal/log"
	"petlink/internal/services"
	"petlink/internal/validate"
)

type CareHandler struct {
	Care *services.CareService
}

// GET /care
func (h *CareHandler) List(c *fiber.Ctx) error {
	posts, err := h.Care.ListPosts()
	if err != nil {
		log.Error(c, "care.list.fail", err, nil)
		flash(c, "Could not load care tips.")
		return c.Redirect("/")
	}
	return render(c, "care_list", fiber.Map{"Posts": posts})
}

// GET /care/:id
func (h *CareHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		flash(c, "Post not found!")
		return c.Redirect("/care")
	}
	post, comments, err := h.Care.PostWithComments(id)
	if err != nil {
		flash(c, "Post not found!")
		return c.Redirect("/care")
	}
	return render(c, "care_detail", fiber.Map{"Post": post, "Comments": comments})
}

// GET /care/new
func (h *CareHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "care_new", fiber.Map{})
}

// POST /care/new
func (h *CareHandler) Create(c *fiber.Ctx) error {
	s := sessionFrom(c)
	title := c.FormValue("title")
	content := c.FormValue("content")

	if _, err := h.Care.CreatePost(s.PrincipalID, title, content); err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			return c.Status(fiber.StatusBadRequest).Render("care_new", fiber.Map{
				"Err": "Title and content are required!",
			})
		}
		log.Error(c, "care.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("care_new", fiber.Map{
			"Err": "Could not create post.",
		})
	}
	log.Audit(c, "care.create", nil)
	flash(c, "Care tip posted successfully!")
	return c.Redirect("/care")
}

type commentBody struct {
	Content string `json:"content"`
}

// POST /care/:id/comment accepts a JSON body or a plain form field.
func (h *CareHandler) Comment(c *fiber.Ctx) error {
	s := sessionFrom(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, "Post not found!")
	}

	var body commentBody
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Content) == "" {
		body.Content = c.FormValue("content")
	}

	if _, err := h.Care.AddComment(id, s.PrincipalID, body.Content); err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			return jsonFail(c, "Comment cannot be empty!")
		case errors.Is(err, services.ErrPostMissing):
			return jsonFail(c, "Post not found!")
		default:
			log.Error(c, "care.comment.fail", err, map[string]any{"post_id": id})
			return jsonFail(c, "Could not add comment.")
		}
	}
	log.Audit(c, "care.comment", map[string]any{"post_id": id})
	return jsonOK(c, "Comment added successfully!", fiber.Map{"author_name": s.Name})
}
