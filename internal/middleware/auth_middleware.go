package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/usecase"
)

const currentUserKey = "currentUser"

// RequireAuth resolves the bearer token into a user and stores it in
// the request locals for the handlers.
func RequireAuth(auth *usecase.AuthUsecase, users usecase.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c)
		}

		userID, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return unauthorized(c)
		}

		user, err := users.FindUserByID(userID)
		if err != nil || !user.IsActive {
			return unauthorized(c)
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// RequireHiringManager gates a route to hiring managers. Must run after
// RequireAuth.
func RequireHiringManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != model.RoleHiringManager {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Hiring manager access required",
			})
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(currentUserKey).(*model.User)
	return user
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Could not validate credentials",
	})
}
