package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CartHandler handles HTTP requests for the shopping cart. All cart routes
// operate on the authenticated user's cart; there is no way to address
// another user's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/products/:productId", h.HandleAddProduct)
	cartRoutes.Put("/products/:productId", h.HandleUpdateProduct)
	cartRoutes.Delete("/products/:productId", h.HandleRemoveProduct)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart retrieves the authenticated user's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	cart, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(cart)
}

// HandleAddProduct adds one unit of a product to the cart, incrementing the
// quantity when the product is already present.
func (h *CartHandler) HandleAddProduct(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	productID := c.Params("productId")

	if err := h.service.AddProduct(userID, productID); err != nil {
		log.Printf("Error adding product %s to cart for user %s: %v", productID, userID, err)
		return respondError(c, err, "Could not add product to cart")
	}
	return c.SendStatus(fiber.StatusCreated)
}

// CartItemUpdateRequest represents the body for a cart item update.
type CartItemUpdateRequest struct {
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// HandleUpdateProduct sets the quantity (and optional discount) of a
// product already in the cart.
func (h *CartHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	productID := c.Params("productId")

	var req CartItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity must not be negative",
		})
	}

	if err := h.service.UpdateProduct(userID, productID, req.Quantity, req.DiscountPercent); err != nil {
		log.Printf("Error updating product %s in cart for user %s: %v", productID, userID, err)
		return respondError(c, err, "Could not update cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRemoveProduct deletes a single product from the cart.
func (h *CartHandler) HandleRemoveProduct(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	productID := c.Params("productId")

	if err := h.service.RemoveProduct(userID, productID); err != nil {
		log.Printf("Error removing product %s from cart for user %s: %v", productID, userID, err)
		return respondError(c, err, "Could not remove product from cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleClearCart empties the authenticated user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if err := h.service.ClearCart(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return respondError(c, err, "Could not clear cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
