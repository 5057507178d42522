package handler

import (
	"go-mrp-api/internal/model"
	"go-mrp-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WorkOrderHandler struct {
	service service.WorkOrderService
}

func NewWorkOrderHandler(s service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{service: s}
}

func (h *WorkOrderHandler) CreateWorkOrder(c *fiber.Ctx) error {
	var req model.WorkOrder
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	wo, err := h.service.Create(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Work order created", "data": wo.ToResponse()})
}

func (h *WorkOrderHandler) UpdateWorkOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid work order ID"})
	}

	var req model.WorkOrder
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	wo, err := h.service.Update(id, &req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Work order updated", "data": wo.ToResponse()})
}

func (h *WorkOrderHandler) GetWorkOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	resp := make([]model.WorkOrderResponse, 0, len(orders))
	for _, wo := range orders {
		resp = append(resp, wo.ToResponse())
	}
	return c.JSON(resp)
}

func (h *WorkOrderHandler) GetWorkOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid work order ID"})
	}

	wo, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(wo.ToResponse())
}

func (h *WorkOrderHandler) DeleteWorkOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid work order ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Work order deleted"})
}
