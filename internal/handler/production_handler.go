package handler

import (
	"go-mrp-api/internal/model"
	"go-mrp-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductionHandler struct {
	service service.ProductionService
}

func NewProductionHandler(s service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: s}
}

type setJobStatusRequest struct {
	Status model.JobStatus `json:"status"`
}

func (h *ProductionHandler) CreateJob(c *fiber.Ctx) error {
	var req service.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	job, err := h.service.Create(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Production job created", "data": job})
}

func (h *ProductionHandler) StartJob(c *fiber.Ctx) error {
	jobID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	job, err := h.service.Start(jobID, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Production job started", "data": job})
}

func (h *ProductionHandler) CompleteJob(c *fiber.Ctx) error {
	jobID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	job, err := h.service.Complete(jobID, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Production job completed", "data": job})
}

func (h *ProductionHandler) FailJob(c *fiber.Ctx) error {
	jobID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	job, err := h.service.Fail(jobID, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Production job failed", "data": job})
}

func (h *ProductionHandler) SetJobStatus(c *fiber.Ctx) error {
	jobID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	var req setJobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	job, err := h.service.SetStatus(jobID, req.Status, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Production job status updated", "data": job})
}

func (h *ProductionHandler) GetJobs(c *fiber.Ctx) error {
	jobs, err := h.service.GetAllJobs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(jobs)
}

func (h *ProductionHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	job, err := h.service.GetJob(jobID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(job)
}

func (h *ProductionHandler) GetJobsByOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("orderId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	jobs, err := h.service.GetJobsByOrder(orderID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(jobs)
}

func (h *ProductionHandler) DeleteJob(c *fiber.Ctx) error {
	jobID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	if err := h.service.Delete(jobID, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Production job deleted"})
}
