package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"immolist/internal/domain"
	applog "immolist/internal/log"
	"immolist/internal/services"
	"immolist/internal/validate"
)

// PropertyHandler serves the JSON API under /api/v1.
type PropertyHandler struct {
	Props *services.PropertyService
}

func (h *PropertyHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Props.GetAll())
}

func (h *PropertyHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	p, found := h.Props.GetByID(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "property not found"})
	}
	return c.JSON(p)
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var in domain.CreateProperty
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	p, err := h.Props.Create(in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "property.create", map[string]any{"id": p.ID, "title": p.Title})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in domain.UpdateProperty
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	p, found, err := h.Props.Update(id, in)
	if err != nil {
		return apiError(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "property not found"})
	}
	applog.Audit(c, "property.update", map[string]any{"id": id})
	return c.JSON(p)
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	removed, err := h.Props.Delete(id)
	if err != nil {
		return apiError(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "property not found"})
	}
	applog.Audit(c, "property.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// apiError maps service failures onto API status codes: bad input is 400,
// a title collision is 409, anything else (store write failure) is 500.
func apiError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	}
	var derr *services.DuplicateTitleError
	if errors.As(err, &derr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": derr.Error()})
	}
	applog.Error(c, "property.store", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save changes"})
}
