package position

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, clientMiddleware fiber.Handler) {
	r.Put("/", clientMiddleware, func(c *fiber.Ctx) error {
		var req Position
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid position")
		}

		clientID, _ := c.Locals("client_id").(string)
		p, err := svc.Set(c.Context(), clientID, req)
		if errors.Is(err, ErrInvalidSource) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Get("/", clientMiddleware, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		p, ok, err := svc.Get(c.Context(), clientID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no position set")
		}
		return c.JSON(p)
	})

	r.Delete("/", clientMiddleware, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		if err := svc.Reset(c.Context(), clientID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
