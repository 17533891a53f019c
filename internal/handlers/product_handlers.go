package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/repository"
)

// ProductHandler exposes product CRUD. Reads are public; create needs a
// seller or admin token, update/delete the owner or an admin. The owner of
// a created product is always the authenticated user.
type ProductHandler struct {
	repo repository.ProductRepository
	log  *zap.Logger
}

// NewProductHandler builds the handler.
func NewProductHandler(repo repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, log: logger}
}

type productReq struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Price       int    `json:"price"`
	CategoryID  string `json:"categoryId"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "name and positive price required")
	}
	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
	}
	ownerID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token subject"})
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		UserID:      ownerID,
		CategoryID:  categoryID,
	}
	if err := h.repo.Create(c.Context(), product); err != nil {
		h.log.Error("failed to create product", zap.Error(err))
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	var categoryID *primitive.ObjectID
	if v := c.Query("categoryId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
		}
		categoryID = &id
	}
	products, err := h.repo.List(c.Context(), categoryID)
	if err != nil {
		h.log.Error("failed to list products", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find product", zap.Error(err))
		return internalError(c)
	}
	if product == nil {
		return notFound(c, "product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	product, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find product", zap.Error(err))
		return internalError(c)
	}
	if product == nil {
		return notFound(c, "product")
	}
	if !isOwnerOrAdmin(c, product.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
		}
		product.CategoryID = categoryID
	}

	if err := h.repo.Update(c.Context(), product); err != nil {
		h.log.Error("failed to update product", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find product", zap.Error(err))
		return internalError(c)
	}
	if product == nil {
		return notFound(c, "product")
	}
	if !isOwnerOrAdmin(c, product.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		h.log.Error("failed to delete product", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
