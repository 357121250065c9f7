package middleware_test

import (
	"net/http/httptest"
	"testing"

	"ruleset-combiner/core/middleware/auth"
	"ruleset-combiner/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: "secret"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"Missing", "", "", fiber.StatusUnauthorized},
		{"Wrong", "nope", "", fiber.StatusUnauthorized},
		{"Header", "secret", "", fiber.StatusOK},
		{"Query", "", "?api_key=secret", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(auth.HeaderName, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	t.Run("Disabled", func(t *testing.T) {
		open := fiber.New()
		open.Use(auth.New(auth.Config{}))
		open.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
		resp, err := open.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRayID(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(rayid.LocalsKey).(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(rayid.HeaderName), 36)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(rayid.HeaderName, "abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(rayid.HeaderName))
}
