package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/models"
)

// objectIDParam parses the named route parameter as a Mongo ObjectID.
func objectIDParam(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// isOwnerOrAdmin reports whether the authenticated user owns the record or
// holds the admin role.
func isOwnerOrAdmin(c *fiber.Ctx, ownerID primitive.ObjectID) bool {
	if middleware.UserRole(c) == models.RoleAdmin {
		return true
	}
	return middleware.UserID(c) == ownerID.Hex()
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": what + " not found"})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
