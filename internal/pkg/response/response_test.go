package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFor(t *testing.T) {
	assert.Equal(t, MessageOK, MessageFor(fiber.StatusOK))
	assert.Equal(t, MessageOK, MessageFor(fiber.StatusNoContent))
	assert.Equal(t, MessageCreated, MessageFor(fiber.StatusCreated))
	assert.Equal(t, MessageServiceUnavailable, MessageFor(fiber.StatusServiceUnavailable))
	assert.Equal(t, MessageInternalServerError, MessageFor(fiber.StatusBadGateway))
	assert.Equal(t, MessageError, MessageFor(fiber.StatusTeapot))
}

func TestWrite_NormalizesStatusAndMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c fiber.Ctx) error { return Error(c, 42, "", nil) })
	app.Get("/new", func(c fiber.Ctx) error { return Created(c, map[string]int{"n": 1}) })

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/bad", nil))
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, MessageInternalServerError, env.Message)

	res, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/new", nil))
	require.NoError(t, err)
	env = Envelope{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.Equal(t, fiber.StatusCreated, env.Status)
	assert.Equal(t, MessageCreated, env.Message)
	assert.Equal(t, map[string]any{"n": float64(1)}, env.Data)
}
