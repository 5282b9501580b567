package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/krishaksaarthi/saarthi-backend/internal/news"
	"github.com/krishaksaarthi/saarthi-backend/internal/weather"
)

var validate = validator.New()

// Pinger reports persistence reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewsProvider is the news service contract consumed by the handlers.
type NewsProvider interface {
	Get(ctx context.Context, state, language string) (news.Result, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, newsSvc NewsProvider, db Pinger) {
	api := app.Group("/api")

	api.Get("/weather", func(c *fiber.Ctx) error {
		coord, err := parseCoordinate(c)
		if err != nil {
			return err
		}

		report, err := service.GetCurrent(c.Context(), coord)
		if err != nil {
			return mapWeatherError(err)
		}
		return c.JSON(report)
	})

	api.Get("/weather/history", func(c *fiber.Ctx) error {
		coord, err := parseCoordinate(c)
		if err != nil {
			return err
		}

		records, err := service.GetHistory(c.Context(), coord)
		if err != nil {
			return mapWeatherError(err)
		}
		if records == nil {
			records = []weather.Record{}
		}
		return c.JSON(records)
	})

	api.Get("/weather/latest", func(c *fiber.Ctx) error {
		coord, err := parseCoordinate(c)
		if err != nil {
			return err
		}

		rec, err := service.GetLatest(c.Context(), coord)
		if err != nil {
			if errors.Is(err, weather.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "No records found for this location")
			}
			return mapWeatherError(err)
		}
		return c.JSON(rec)
	})

	api.Get("/news", func(c *fiber.Ctx) error {
		result, err := newsSvc.Get(c.Context(), c.Query("state"), c.Query("language", "en"))
		if err != nil {
			return mapNewsError(err)
		}
		return c.JSON(result)
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "error",
				"service":   "Krishak Saarthi Weather API",
				"database":  "disconnected",
				"timestamp": time.Now().UTC(),
			})
		}
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "Krishak Saarthi Weather API",
			"database":  "connected",
			"timestamp": time.Now().UTC(),
		})
	})
}

// coordinateQuery holds the lat/lon query parameters. Boundary values are
// inclusive.
type coordinateQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

func parseCoordinate(c *fiber.Ctx) (weather.Coordinate, error) {
	latRaw := c.Query("lat")
	lonRaw := c.Query("lon")
	if latRaw == "" || lonRaw == "" {
		return weather.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required.")
	}

	var q coordinateQuery
	var err error
	if q.Latitude, err = strconv.ParseFloat(latRaw, 64); err != nil {
		return weather.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "Invalid latitude. Must be between -90 and 90.")
	}
	if q.Longitude, err = strconv.ParseFloat(lonRaw, 64); err != nil {
		return weather.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "Invalid longitude. Must be between -180 and 180.")
	}

	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Longitude" {
			return weather.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "Invalid longitude. Must be between -180 and 180.")
		}
		return weather.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "Invalid latitude. Must be between -90 and 90.")
	}

	return weather.NewCoordinate(q.Latitude, q.Longitude), nil
}

// mapWeatherError translates service errors into HTTP statuses. Upstream
// detail never leaks to the caller; it is logged inside the service.
func mapWeatherError(err error) error {
	switch {
	case errors.Is(err, weather.ErrInvalidCoordinate):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid coordinate.")
	case errors.Is(err, weather.ErrNotConfigured):
		return fiber.NewError(fiber.StatusInternalServerError, "Weather service not configured. Contact support.")
	case errors.Is(err, weather.ErrUpstream):
		return fiber.NewError(fiber.StatusBadGateway, "Weather service unavailable. Please try again.")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data. Check your connection.")
	}
}

func mapNewsError(err error) error {
	switch {
	case errors.Is(err, news.ErrMissingAPIKey):
		return fiber.NewError(fiber.StatusInternalServerError, "News API key is not configured on the server.")
	case errors.Is(err, news.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, "Rate limit exceeded for News API.")
	case errors.Is(err, news.ErrInvalidKey):
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid News API key.")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch news.")
	}
}
