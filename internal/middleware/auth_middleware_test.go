package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catat-jualan/internal/logging"
)

type fakeAuth map[string]string

func (f fakeAuth) Authenticate(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

type fakeAdmins map[string]bool

func (f fakeAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	if userID == "broken" {
		return false, errors.New("store down")
	}
	return f[userID], nil
}

func newApp() *fiber.App {
	app := fiber.New()
	auth := fakeAuth{"good": "u1", "admin": "a1", "broken": "broken"}
	app.Get("/me", RequireAuth(auth), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	app.Get("/admin", RequireAuth(auth), RequireAdmin(fakeAdmins{"a1": true}, logging.Nop()), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/down", RequireStore(false), func(c *fiber.Ctx) error { return c.SendString("unreachable") })
	app.Get("/up", RequireStore(true), func(c *fiber.Ctx) error { return c.SendString("up") })
	return app
}

func do(t *testing.T, app *fiber.App, path, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRequireAuth(t *testing.T) {
	app := newApp()

	status, body := do(t, app, "/me", "")
	assert.Equal(t, 401, status)
	assert.JSONEq(t, `{"error":"Missing or invalid token"}`, body)

	status, _ = do(t, app, "/me", "Basic good")
	assert.Equal(t, 401, status)

	status, body = do(t, app, "/me", "Bearer nope")
	assert.Equal(t, 401, status)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, body)

	status, body = do(t, app, "/me", "Bearer good")
	assert.Equal(t, 200, status)
	assert.Equal(t, "u1", body)
}

func TestRequireAdmin(t *testing.T) {
	app := newApp()

	status, body := do(t, app, "/admin", "Bearer good")
	assert.Equal(t, 403, status)
	assert.Contains(t, body, "ADMIN_USER_IDS")

	status, _ = do(t, app, "/admin", "Bearer admin")
	assert.Equal(t, 200, status)

	status, _ = do(t, app, "/admin", "Bearer broken")
	assert.Equal(t, 500, status)
}

func TestRequireStore(t *testing.T) {
	app := newApp()

	status, body := do(t, app, "/down", "")
	assert.Equal(t, 503, status)
	assert.JSONEq(t, `{"error":"Google Sheets not configured"}`, body)

	status, _ = do(t, app, "/up", "")
	assert.Equal(t, 200, status)
}
