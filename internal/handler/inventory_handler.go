package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

type InventoryHandler struct {
	service service.InventoryService
	log     logging.Logger
}

func NewInventoryHandler(s service.InventoryService, log logging.Logger) *InventoryHandler {
	return &InventoryHandler{service: s, log: log}
}

// GET /api/products
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get products")
	}
	return c.JSON(products)
}

// POST /api/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.CreateProduct(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// PATCH /api/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), getUserID(c), paramID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update product")
	}
	return c.JSON(product)
}

// DELETE /api/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), getUserID(c), paramID(c)); err != nil {
		return respondError(c, h.log, err, "Failed to delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/transactions
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	txs, err := h.service.ListTransactions(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get transactions")
	}
	return c.JSON(txs)
}

// POST /api/transactions. A repeated orderId returns the first transaction.
func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	tx, err := h.service.RecordTransaction(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}
