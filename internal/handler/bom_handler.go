package handler

import (
	"go-mrp-api/internal/model"
	"go-mrp-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BOMHandler struct {
	service service.BOMService
}

func NewBOMHandler(s service.BOMService) *BOMHandler {
	return &BOMHandler{service: s}
}

func (h *BOMHandler) CreateBOM(c *fiber.Ctx) error {
	var req model.BOM
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	bom, err := h.service.Create(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "BOM created", "data": bom})
}

func (h *BOMHandler) UpdateBOM(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid BOM ID"})
	}

	var req model.BOM
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	bom, err := h.service.Update(id, &req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "BOM updated", "data": bom})
}

func (h *BOMHandler) ReleaseBOM(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid BOM ID"})
	}

	bom, err := h.service.Release(id, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "BOM released", "data": bom})
}

func (h *BOMHandler) GetBOMs(c *fiber.Ctx) error {
	boms, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(boms)
}

func (h *BOMHandler) GetBOM(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid BOM ID"})
	}

	bom, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(bom)
}

func (h *BOMHandler) GetBOMsByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	boms, err := h.service.GetByProduct(productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(boms)
}

func (h *BOMHandler) DeleteBOM(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid BOM ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "BOM deleted"})
}
