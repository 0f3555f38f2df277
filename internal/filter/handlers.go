package filter

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes the persisted per-client filter state.
func RegisterRoutes(r fiber.Router, store *Store, clientMiddleware fiber.Handler) {
	r.Get("/", clientMiddleware, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		state := store.Load(c.Context(), clientID)
		return c.JSON(fiber.Map{
			"filter":            state,
			"activeFilterCount": ActiveFilterCount(state),
		})
	})

	r.Put("/", clientMiddleware, func(c *fiber.Ctx) error {
		var state State
		if err := c.BodyParser(&state); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid filter state")
		}
		if !state.Quick.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown quick filter")
		}

		clientID, _ := c.Locals("client_id").(string)
		if err := store.Save(c.Context(), clientID, state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"filter":            state,
			"activeFilterCount": ActiveFilterCount(state),
		})
	})

	// Reset-all: the one and only reset path.
	r.Delete("/", clientMiddleware, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		saved := store.Load(c.Context(), clientID)
		reset := saved.Reset()
		if err := store.Save(c.Context(), clientID, reset); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"filter":            reset,
			"activeFilterCount": 0,
		})
	})
}
