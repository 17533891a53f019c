package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/events"
	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/repository"
)

// OrderEventPublisher emits order lifecycle events. *events.Producer
// satisfies it; a nil producer is a no-op.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, ev events.OrderCreatedEvent) error
}

// OrderHandler manages purchases. Any authenticated user can place an
// order; users only see their own orders unless they hold an admin role.
type OrderHandler struct {
	repo      repository.OrderRepository
	publisher OrderEventPublisher
	log       *zap.Logger
}

// NewOrderHandler builds the handler. publisher may be nil.
func NewOrderHandler(repo repository.OrderRepository, publisher OrderEventPublisher, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, publisher: publisher, log: logger}
}

type orderItemReq struct {
	ProductID string `json:"productId"`
	Count     int    `json:"count"`
}

type orderReq struct {
	Items []orderItemReq `json:"items"`
}

func (h *OrderHandler) parseItems(reqItems []orderItemReq) ([]models.OrderItem, error) {
	if len(reqItems) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "items required")
	}
	items := make([]models.OrderItem, 0, len(reqItems))
	for _, it := range reqItems {
		productID, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid productId")
		}
		if it.Count <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "count must be positive")
		}
		items = append(items, models.OrderItem{ProductID: productID, Count: it.Count})
	}
	return items, nil
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req orderReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	items, err := h.parseItems(req.Items)
	if err != nil {
		return err
	}
	userID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token subject"})
	}

	order := &models.Order{UserID: userID, Items: items}
	if err := h.repo.Create(c.Context(), order); err != nil {
		h.log.Error("failed to create order", zap.Error(err))
		return internalError(c)
	}

	h.publishCreated(c, order)
	return c.Status(fiber.StatusCreated).JSON(order)
}

// publishCreated emits the order-created event. Failures are logged and
// swallowed; the order is already persisted.
func (h *OrderHandler) publishCreated(c *fiber.Ctx, order *models.Order) {
	if h.publisher == nil {
		return
	}
	ev := events.OrderCreatedEvent{
		OrderID:   order.ID.Hex(),
		UserID:    order.UserID.Hex(),
		CreatedAt: order.CreatedAt,
	}
	for _, it := range order.Items {
		ev.Items = append(ev.Items, events.OrderItemEvent{
			ProductID: it.ProductID.Hex(),
			Count:     it.Count,
		})
	}
	if err := h.publisher.PublishOrderCreated(c.Context(), ev); err != nil {
		h.log.Warn("failed to publish order created event",
			zap.String("order_id", ev.OrderID), zap.Error(err))
	}
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	role := middleware.UserRole(c)
	if role == models.RoleAdmin || role == models.RoleSuperAdmin {
		orders, err := h.repo.List(c.Context())
		if err != nil {
			h.log.Error("failed to list orders", zap.Error(err))
			return internalError(c)
		}
		return c.JSON(orders)
	}

	userID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token subject"})
	}
	orders, err := h.repo.ListByUser(c.Context(), userID)
	if err != nil {
		h.log.Error("failed to list orders", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	order, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find order", zap.Error(err))
		return internalError(c)
	}
	if order == nil {
		return notFound(c, "order")
	}
	if !isOwnerOrAdmin(c, order.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}
	return c.JSON(order)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req orderReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	order, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find order", zap.Error(err))
		return internalError(c)
	}
	if order == nil {
		return notFound(c, "order")
	}
	if !isOwnerOrAdmin(c, order.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}

	if len(req.Items) > 0 {
		items, err := h.parseItems(req.Items)
		if err != nil {
			return err
		}
		order.Items = items
	}

	if err := h.repo.Update(c.Context(), order); err != nil {
		h.log.Error("failed to update order", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(order)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	order, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		h.log.Error("failed to find order", zap.Error(err))
		return internalError(c)
	}
	if order == nil {
		return notFound(c, "order")
	}
	if !isOwnerOrAdmin(c, order.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		h.log.Error("failed to delete order", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "order deleted"})
}
