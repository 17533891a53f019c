package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/repository"
)

// CommentHandler exposes review CRUD. Reads are public; writes need a user
// or admin token and are owner-checked.
type CommentHandler struct {
	repo repository.CommentRepository
	log  *zap.Logger
}

// NewCommentHandler builds the handler.
func NewCommentHandler(repo repository.CommentRepository, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{repo: repo, log: logger}
}

type commentReq struct {
	ProductID string `json:"productId,omitempty"`
	Star      int    `json:"star,omitempty"`
	Message   string `json:"message"`
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message required")
	}
	if req.Star < 0 || req.Star > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "star must be between 0 and 5")
	}
	authorID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token subject"})
	}

	comment := &models.Comment{
		UserID:  authorID,
		Star:    req.Star,
		Message: req.Message,
	}
	if req.ProductID != "" {
		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid productId")
		}
		comment.ProductID = productID
	}

	if err := h.repo.Create(c.Context(), comment); err != nil {
		h.log.Error("failed to create comment", zap.Error(err))
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	var productID *primitive.ObjectID
	if v := c.Query("productId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid productId")
		}
		productID = &id
	}
	comments, err := h.repo.List(c.Context(), productID)
	if err != nil {
		h.log.Error("failed to list comments", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(comments)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	comment, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find comment", zap.Error(err))
		return internalError(c)
	}
	if comment == nil {
		return notFound(c, "comment")
	}
	if !isOwnerOrAdmin(c, comment.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}

	if req.Message != "" {
		comment.Message = req.Message
	}
	if req.Star != 0 {
		if req.Star < 0 || req.Star > 5 {
			return fiber.NewError(fiber.StatusBadRequest, "star must be between 0 and 5")
		}
		comment.Star = req.Star
	}

	if err := h.repo.Update(c.Context(), comment); err != nil {
		h.log.Error("failed to update comment", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find comment", zap.Error(err))
		return internalError(c)
	}
	if comment == nil {
		return notFound(c, "comment")
	}
	if !isOwnerOrAdmin(c, comment.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		h.log.Error("failed to delete comment", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}
