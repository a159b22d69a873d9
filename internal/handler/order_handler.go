package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

type OrderHandler struct {
	service service.OrderService
	log     logging.Logger
}

func NewOrderHandler(s service.OrderService, log logging.Logger) *OrderHandler {
	return &OrderHandler{service: s, log: log}
}

// GET /api/orders
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get orders")
	}
	return c.JSON(orders)
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.service.Create(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// PATCH /api/orders/:id. Settling an order records its sale.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	var req service.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.service.Update(c.UserContext(), getUserID(c), paramID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update order")
	}
	return c.JSON(order)
}
