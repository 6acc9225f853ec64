// handlers/leaderboard_routes.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"points-leaderboard/services"
	"points-leaderboard/storage"
)

func SetupLeaderboardRoutes(app *fiber.App, store storage.Storage, claimService *services.ClaimService) {
	api := app.Group("/api")

	// Ranked user list (points descending)
	api.Get("/users", func(c *fiber.Ctx) error {
		users, err := store.GetAllUsers(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to fetch users",
			})
		}
		return c.JSON(users)
	})

	// Create new user
	api.Post("/users", func(c *fiber.Ctx) error {
		var req struct {
			Name   string  `json:"name"`
			Avatar *string `json:"avatar"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid user data",
			})
		}

		user, err := store.CreateUser(c.Context(), req.Name, req.Avatar)
		if errors.Is(err, storage.ErrInvalidName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid user data",
				"errors":  []string{err.Error()},
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to create user",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	// Claim points for a user
	api.Post("/users/:id/claim", func(c *fiber.Ctx) error {
		userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid user ID",
			})
		}

		result, err := claimService.ClaimPoints(c.Context(), userID)
		switch {
		case errors.Is(err, services.ErrInvalidUserID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid user ID",
			})
		case errors.Is(err, storage.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to claim points",
			})
		}
		return c.JSON(result)
	})

	// Recent claim activity, joined with the claiming user
	api.Get("/claim-history", func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(storage.DefaultHistoryLimit)))
		if err != nil || limit <= 0 {
			limit = storage.DefaultHistoryLimit
		}

		history, err := store.GetClaimHistory(c.Context(), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to fetch claim history",
			})
		}
		return c.JSON(history)
	})
}
