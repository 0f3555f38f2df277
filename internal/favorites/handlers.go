package favorites

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, clientMiddleware fiber.Handler) {
	r.Get("/", clientMiddleware, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		ids, err := svc.List(c.Context(), clientID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if ids == nil {
			ids = []int{}
		}
		return c.JSON(fiber.Map{"favorites": ids, "count": len(ids)})
	})

	r.Put("/:id", clientMiddleware, func(c *fiber.Ctx) error {
		trainingID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "training id must be numeric")
		}

		clientID, _ := c.Locals("client_id").(string)
		favorite, err := svc.Toggle(c.Context(), clientID, trainingID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"id": trainingID, "favorite": favorite})
	})

	r.Delete("/", clientMiddleware, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		if err := svc.Clear(c.Context(), clientID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
