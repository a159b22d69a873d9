package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/middleware"
	"go-catat-jualan/internal/ws"
)

// wsUpgrade authenticates /ws?token= before the upgrade; browsers can't
// send an Authorization header on websocket requests.
func wsUpgrade(auth middleware.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		userID, err := auth.Authenticate(c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func wsConnect(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		client := ws.Client{UserID: userID, Conn: c}

		if !hub.Join(client) {
			return
		}
		defer hub.Leave(client)

		for {
			// Keep alive loop; clients only listen
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
