package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTermParam(t *testing.T) {
	app := fiber.New()
	app.Get("/search", func(c *fiber.Ctx) error {
		return c.SendString(searchTermParam(c))
	})

	get := func(t *testing.T, target string) string {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		buf := make([]byte, 64)
		n, _ := resp.Body.Read(buf)
		return string(buf[:n])
	}

	t.Run("spanish is the documented param", func(t *testing.T) {
		assert.Equal(t, "hola", get(t, "/search?spanish=hola"))
	})

	t.Run("q works as an alias", func(t *testing.T) {
		assert.Equal(t, "hola", get(t, "/search?q=hola"))
	})

	t.Run("spanish wins when both are given", func(t *testing.T) {
		assert.Equal(t, "agua", get(t, "/search?spanish=agua&q=hola"))
	})

	t.Run("empty when neither is given", func(t *testing.T) {
		assert.Equal(t, "", get(t, "/search"))
	})
}
