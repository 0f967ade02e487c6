package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-display/internal/store"
	"github.com/i474232898/weather-display/internal/weather"
)

var validate = validator.New()

const refreshTimeout = 30 * time.Second

// Service is what the routes need from weather.Service.
type Service interface {
	Latest() (weather.Display, error)
	Refresh(ctx context.Context) (weather.Display, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// limiter throttles manual refreshes; nil disables throttling.
func RegisterRoutes(app *fiber.App, service Service, limiter *rate.Limiter) {
	v1 := app.Group("/api/v1")

	v1.Get("/display", func(c *fiber.Ctx) error {
		d, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(d)
	})

	v1.Get("/location", func(c *fiber.Ctx) error {
		d, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"coordinates": d.Coordinates,
			"label":       d.Label,
		})
	})

	v1.Get("/forecast/today", func(c *fiber.Ctx) error {
		d, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"generatedAt": d.GeneratedAt,
			"hours":       d.Today,
		})
	})

	v1.Get("/forecast/daily", func(c *fiber.Ctx) error {
		var q dailyQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be an integer")
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		d, err := latest(service)
		if err != nil {
			return err
		}
		days := d.Daily
		if q.Days != nil && *q.Days < len(days) {
			days = days[:*q.Days]
		}
		return c.JSON(fiber.Map{
			"generatedAt": d.GeneratedAt,
			"days":        days,
		})
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		if limiter != nil && !limiter.Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "refresh requested too often")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), refreshTimeout)
		defer cancel()

		d, err := service.Refresh(ctx)
		if err != nil {
			return refreshError(err)
		}
		return c.JSON(d)
	})
}

// dailyQuery holds query parameters for the daily endpoint.
// Days is a pointer so that an explicit days=0 is rejected.
type dailyQuery struct {
	Days *int `query:"days" validate:"omitempty,min=1,max=7"`
}

func latest(service Service) (weather.Display, error) {
	d, err := service.Latest()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return d, fiber.NewError(fiber.StatusNotFound, "no forecast available yet")
		}
		return d, fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast")
	}
	return d, nil
}

// refreshError maps pipeline failures onto HTTP errors.
func refreshError(err error) error {
	switch {
	case errors.Is(err, weather.ErrPermissionDenied):
		return fiber.NewError(fiber.StatusForbidden, "location permission denied")
	case errors.Is(err, weather.ErrLocationUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "location unavailable")
	case errors.Is(err, weather.ErrFetch):
		return fiber.NewError(fiber.StatusBadGateway, "forecast fetch failed")
	case errors.Is(err, store.ErrStaleRun):
		return fiber.NewError(fiber.StatusConflict, "a newer refresh already completed")
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "refresh timed out")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "refresh failed")
	}
}
