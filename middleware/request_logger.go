package middleware

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxLoggedLine = 80

// RequestLogger logs every /api request with an assigned request id,
// status, duration and a truncated echo of the JSON response body.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(c.Path(), "/api") {
			return c.Next()
		}

		requestID := uuid.NewString()
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		line := c.Method() + " " + c.Path() + " " +
			strconv.Itoa(c.Response().StatusCode()) + " in " + duration.Round(time.Millisecond).String()
		if body := c.Response().Body(); len(body) > 0 {
			line += " :: " + string(body)
		}
		// Truncate on runes: the body echo can carry arbitrary UTF-8.
		if runes := []rune(line); len(runes) > maxLoggedLine {
			line = string(runes[:maxLoggedLine-1]) + "…"
		}

		log.Printf("[%s] %s", requestID[:8], line)
		return err
	}
}
