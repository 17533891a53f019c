package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/repository"
)

// RegionHandler exposes region CRUD. Reads are public, writes admin only.
type RegionHandler struct {
	repo repository.RegionRepository
	log  *zap.Logger
}

// NewRegionHandler builds the handler.
func NewRegionHandler(repo repository.RegionRepository, logger *zap.Logger) *RegionHandler {
	return &RegionHandler{repo: repo, log: logger}
}

type regionReq struct {
	Name string `json:"name"`
}

func (h *RegionHandler) Create(c *fiber.Ctx) error {
	var req regionReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}
	region := &models.Region{Name: req.Name}
	if err := h.repo.Create(c.Context(), region); err != nil {
		h.log.Error("failed to create region", zap.Error(err))
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(region)
}

func (h *RegionHandler) List(c *fiber.Ctx) error {
	regions, err := h.repo.List(c.Context())
	if err != nil {
		h.log.Error("failed to list regions", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(regions)
}

func (h *RegionHandler) Get(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	region, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find region", zap.Error(err))
		return internalError(c)
	}
	if region == nil {
		return notFound(c, "region")
	}
	return c.JSON(region)
}

func (h *RegionHandler) Update(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req regionReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	region, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find region", zap.Error(err))
		return internalError(c)
	}
	if region == nil {
		return notFound(c, "region")
	}
	if req.Name != "" {
		region.Name = req.Name
	}
	if err := h.repo.Update(c.Context(), region); err != nil {
		h.log.Error("failed to update region", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(region)
}

func (h *RegionHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	region, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find region", zap.Error(err))
		return internalError(c)
	}
	if region == nil {
		return notFound(c, "region")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		h.log.Error("failed to delete region", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "region deleted"})
}
