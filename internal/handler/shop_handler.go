package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

type ShopHandler struct {
	shopService service.ShopService
	costService service.OperationalCostService
	log         logging.Logger
}

func NewShopHandler(shop service.ShopService, costs service.OperationalCostService, log logging.Logger) *ShopHandler {
	return &ShopHandler{shopService: shop, costService: costs, log: log}
}

type SaveShopRequest struct {
	Name string `json:"name"`
}

// GET /api/shop
func (h *ShopHandler) GetShop(c *fiber.Ctx) error {
	shop, err := h.shopService.Get(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get shop")
	}
	return c.JSON(shop)
}

// PUT /api/shop
func (h *ShopHandler) SaveShop(c *fiber.Ctx) error {
	var req SaveShopRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	shop, err := h.shopService.Save(c.UserContext(), getUserID(c), req.Name)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update shop")
	}
	return c.JSON(shop)
}

// GET /api/operational-costs
func (h *ShopHandler) GetOperationalCosts(c *fiber.Ctx) error {
	costs, err := h.costService.List(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get operational costs")
	}
	return c.JSON(costs)
}

// POST /api/operational-costs
func (h *ShopHandler) CreateOperationalCost(c *fiber.Ctx) error {
	var req service.CreateOperationalCostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cost, err := h.costService.Create(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create operational cost")
	}
	return c.Status(fiber.StatusCreated).JSON(cost)
}
