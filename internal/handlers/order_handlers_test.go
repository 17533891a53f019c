package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/events"
	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/models"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = primitive.NewObjectID()
	cp := *o
	r.orders[o.ID.Hex()] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id.Hex()]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID.Hex()] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id.Hex())
	return nil
}

// failingPublisher always errors, like a producer whose broker is down.
type failingPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *failingPublisher) PublishOrderCreated(context.Context, events.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return errors.New("broker unreachable")
}

func (p *failingPublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func newOrderApp(repo *fakeOrderRepo, pub OrderEventPublisher, userID primitive.ObjectID, role string) *fiber.App {
	h := NewOrderHandler(repo, pub, zap.NewNop())
	app := fiber.New()
	asUser := func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, userID.Hex())
		c.Locals(middleware.LocalUserRole, role)
		return c.Next()
	}
	orders := app.Group("/api/v1/orders", asUser)
	orders.Post("/", h.Create)
	orders.Get("/", h.List)
	return app
}

func orderBody(productID primitive.ObjectID) map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": productID.Hex(), "count": 2},
		},
	}
}

func TestOrderCreateSurvivesPublishFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &failingPublisher{}
	userID := primitive.NewObjectID()
	app := newOrderApp(repo, pub, userID, models.RoleUser)

	status := doPost(t, app, "/api/v1/orders/", orderBody(primitive.NewObjectID()))
	assert.Equal(t, fiber.StatusCreated, status)

	// The order is persisted even though the event could not go out.
	orders, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Items[0].Count)
	assert.Equal(t, 1, pub.callCount())
}

func TestOrderCreateNilPublisher(t *testing.T) {
	repo := newFakeOrderRepo()
	userID := primitive.NewObjectID()
	app := newOrderApp(repo, nil, userID, models.RoleUser)

	status := doPost(t, app, "/api/v1/orders/", orderBody(primitive.NewObjectID()))
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestOrderCreateValidation(t *testing.T) {
	repo := newFakeOrderRepo()
	app := newOrderApp(repo, nil, primitive.NewObjectID(), models.RoleUser)

	// No items.
	status := doPost(t, app, "/api/v1/orders/", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Non-positive count.
	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": primitive.NewObjectID().Hex(), "count": 0},
		},
	}
	assert.Equal(t, fiber.StatusBadRequest, doPost(t, app, "/api/v1/orders/", body))

	// Malformed product id.
	body = map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "nope", "count": 1},
		},
	}
	assert.Equal(t, fiber.StatusBadRequest, doPost(t, app, "/api/v1/orders/", body))
}

func TestOrderListScopedToOwner(t *testing.T) {
	repo := newFakeOrderRepo()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	require.NoError(t, repo.Create(context.Background(), &models.Order{UserID: owner}))
	require.NoError(t, repo.Create(context.Background(), &models.Order{UserID: other}))

	listOrders := func(app *fiber.App) []models.Order {
		req := httptest.NewRequest("GET", "/api/v1/orders/", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var orders []models.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
		return orders
	}

	// A plain user sees only their own orders.
	userApp := newOrderApp(repo, nil, owner, models.RoleUser)
	orders := listOrders(userApp)
	require.Len(t, orders, 1)
	assert.Equal(t, owner, orders[0].UserID)

	// An admin sees everything.
	adminApp := newOrderApp(repo, nil, primitive.NewObjectID(), models.RoleAdmin)
	assert.Len(t, listOrders(adminApp), 2)
}
