package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/repository"
)

// CategoryHandler exposes category CRUD. Reads are public; create/delete
// need admin, update admin or super_admin.
type CategoryHandler struct {
	repo repository.CategoryRepository
	log  *zap.Logger
}

// NewCategoryHandler builds the handler.
func NewCategoryHandler(repo repository.CategoryRepository, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: repo, log: logger}
}

type categoryReq struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}
	category := &models.Category{Name: req.Name}
	if err := h.repo.Create(c.Context(), category); err != nil {
		h.log.Error("failed to create category", zap.Error(err))
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.repo.List(c.Context())
	if err != nil {
		h.log.Error("failed to list categories", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	category, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find category", zap.Error(err))
		return internalError(c)
	}
	if category == nil {
		return notFound(c, "category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	category, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find category", zap.Error(err))
		return internalError(c)
	}
	if category == nil {
		return notFound(c, "category")
	}
	if req.Name != "" {
		category.Name = req.Name
	}
	if err := h.repo.Update(c.Context(), category); err != nil {
		h.log.Error("failed to update category", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	category, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find category", zap.Error(err))
		return internalError(c)
	}
	if category == nil {
		return notFound(c, "category")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		h.log.Error("failed to delete category", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}
