package plan

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"backend-trainingsplan/internal/export"
	"backend-trainingsplan/internal/filter"
)

// RegisterRoutes exposes the assembled plan. The list endpoint accepts the
// shared filter query parameters plus sort and gruppe; anonymous requests get
// the unpersonalized plan.
func RegisterRoutes(r fiber.Router, v *View, optionalClient fiber.Handler) {
	r.Get("/", optionalClient, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		q := queryValues(c)

		snap, err := v.snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}

		state := v.state(c.Context(), clientID, q)
		sortKeys := filter.ParseSortKeys(q.Get("sort"))
		trainings := v.assemble(c.Context(), clientID, snap, state, sortKeys, time.Now())

		resp := fiber.Map{
			"trainings":         trainings,
			"count":             len(trainings),
			"total":             len(snap.Trainings),
			"filter":            state,
			"activeFilterCount": filter.ActiveFilterCount(state),
			"query":             state.Values().Encode(),
			"version":           snap.Version,
			"generated":         snap.Generated,
			"fetchedAt":         snap.FetchedAt,
			"fromCache":         snap.FromCache,
		}
		if key := filter.GroupKey(q.Get("gruppe")); key != "" {
			groups := filter.GroupBy(trainings, key)
			if groups == nil {
				return fiber.NewError(fiber.StatusBadRequest, "unknown gruppe")
			}
			resp["groups"] = groups
		}
		return c.JSON(resp)
	})

	r.Get("/meta", func(c *fiber.Ctx) error {
		snap, err := v.snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{
			"metadata":  snap.Metadata,
			"total":     len(snap.Trainings),
			"version":   snap.Version,
			"generated": snap.Generated,
			"fetchedAt": snap.FetchedAt,
			"fromCache": snap.FromCache,
		})
	})

	r.Post("/refresh", func(c *fiber.Ctx) error {
		if v.loader == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "no loader configured")
		}
		result, err := v.loader.Load(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{
			"changed":   result.Changed,
			"fromCache": result.FromCache,
			"version":   result.Snapshot.Version,
			"hash":      result.Snapshot.Hash,
			"total":     len(result.Snapshot.Trainings),
			"fetchedAt": result.Snapshot.FetchedAt,
		})
	})
}

// RegisterExport serves the plan as an iCalendar feed, honoring the same
// filter parameters as the list endpoint.
func RegisterExport(r fiber.Router, v *View, optionalClient fiber.Handler) {
	r.Get("/ics", optionalClient, func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		q := queryValues(c)

		snap, err := v.snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}

		state := v.state(c.Context(), clientID, q)
		trainings := v.assemble(c.Context(), clientID, snap, state, filter.DefaultSortKeys, time.Now())

		c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="trainingsplan.ics"`)
		return c.SendString(export.Calendar(trainings, time.Now()))
	})
}

func queryValues(c *fiber.Ctx) url.Values {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return q
}
