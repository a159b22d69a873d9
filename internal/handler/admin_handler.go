package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

// AdminHandler serves /api/admin; RequireAdmin guards every route.
type AdminHandler struct {
	admin  service.AdminService
	orders service.OrderService
	log    logging.Logger
}

func NewAdminHandler(admin service.AdminService, orders service.OrderService, log logging.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, orders: orders, log: log}
}

// GET /api/admin/users
func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.admin.Users(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Failed to get users")
	}
	return c.JSON(users)
}

// PATCH /api/admin/users/:id
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	var req service.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.admin.SetRole(c.UserContext(), paramID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update user")
	}
	return c.JSON(user)
}

// GET /api/admin/products?userId=
func (h *AdminHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.admin.Products(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get products")
	}
	return c.JSON(products)
}

// GET /api/admin/orders?userId=
func (h *AdminHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.admin.Orders(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get orders")
	}
	return c.JSON(orders)
}

// PATCH /api/admin/orders/:id
func (h *AdminHandler) UpdateOrder(c *fiber.Ctx) error {
	var req service.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.orders.UpdateAny(c.UserContext(), paramID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update order")
	}
	return c.JSON(order)
}

// GET /api/admin/transactions?userId=&startDate=&endDate=
func (h *AdminHandler) GetTransactions(c *fiber.Ctx) error {
	var filter service.TransactionFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query"})
	}

	txs, err := h.admin.Transactions(c.UserContext(), &filter)
	if err != nil {
		return respondError(c, h.log, err, "Failed to get transactions")
	}
	return c.JSON(txs)
}

// PATCH /api/admin/transactions/:id
func (h *AdminHandler) UpdateTransaction(c *fiber.Ctx) error {
	var req service.AdminUpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	tx, err := h.admin.UpdateTransaction(c.UserContext(), paramID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update transaction")
	}
	return c.JSON(tx)
}

// DELETE /api/admin/transactions/:id
func (h *AdminHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.admin.DeleteTransaction(c.UserContext(), paramID(c)); err != nil {
		return respondError(c, h.log, err, "Failed to delete transaction")
	}
	return c.JSON(fiber.Map{"ok": true})
}
