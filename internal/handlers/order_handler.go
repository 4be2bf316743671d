package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.CheckoutService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.CheckoutService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleCheckout converts the authenticated user's cart into an order. The
// request body is empty; everything comes from stored state.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	order, err := h.service.Checkout(userID)
	if err != nil {
		log.Printf("Checkout failed for user %s: %v", userID, err)
		return respondError(c, err, "Could not process checkout")
	}
	return c.JSON(order)
}

// HandleGetOrders lists the authenticated user's order history.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	orders, err := h.service.GetOrdersForUser(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one of the authenticated user's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	orderID := c.Params("id")

	order, err := h.service.GetOrderForUser(userID, orderID)
	if err != nil {
		log.Printf("Error getting order %s for user %s: %v", orderID, userID, err)
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}
