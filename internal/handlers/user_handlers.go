package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/auth"
	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/repository"
)

// UserHandler exposes user administration endpoints.
type UserHandler struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
	log    *zap.Logger
}

// NewUserHandler builds the handler.
func NewUserHandler(repo repository.UserRepository, hasher *auth.PasswordHasher, logger *zap.Logger) *UserHandler {
	return &UserHandler{repo: repo, hasher: hasher, log: logger}
}

// List returns all users. Admin only.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.repo.List(c.Context())
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(users)
}

// Get returns one user by id.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find user", zap.Error(err))
		return internalError(c)
	}
	if user == nil {
		return notFound(c, "user")
	}
	return c.JSON(user)
}

type updateUserReq struct {
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
	Image    string `json:"image,omitempty"`
	Year     int    `json:"year,omitempty"`
	RegionID string `json:"regionId,omitempty"`
}

// Update patches a profile. A user may update only their own record;
// admins may update anyone.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	if !isOwnerOrAdmin(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}

	var req updateUserReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	user, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find user", zap.Error(err))
		return internalError(c)
	}
	if user == nil {
		return notFound(c, "user")
	}

	if req.UserName != "" {
		user.UserName = req.UserName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Image != "" {
		user.Image = req.Image
	}
	if req.Year != 0 {
		user.Year = req.Year
	}
	if req.RegionID != "" {
		regionID, err := primitive.ObjectIDFromHex(req.RegionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid regionId")
		}
		user.RegionID = regionID
	}
	if req.Password != "" {
		digest, err := h.hasher.Hash(req.Password)
		if err != nil {
			h.log.Error("failed to hash password", zap.Error(err))
			return internalError(c)
		}
		user.PasswordHash = digest
	}

	if err := h.repo.Update(c.Context(), user); err != nil {
		if repository.IsDuplicateKey(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "identifier already taken"})
		}
		h.log.Error("failed to update user", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(user)
}

// Delete removes a user. Admin only.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find user", zap.Error(err))
		return internalError(c)
	}
	if user == nil {
		return notFound(c, "user")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		h.log.Error("failed to delete user", zap.Error(err))
		return internalError(c)
	}
	h.log.Info("user deleted",
		zap.String("user_id", id.Hex()),
		zap.String("deleted_by", middleware.UserID(c)),
	)
	return c.JSON(fiber.Map{"message": "user deleted"})
}
