package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mailgate/mailgate/internal/auth"
	"github.com/mailgate/mailgate/internal/validate"
)

// RegisterAuthRoutes wires the login endpoint.
func RegisterAuthRoutes(r fiber.Router, svc *auth.Service) {
	r.Post("/auth/login", func(c *fiber.Ctx) error {
		var req struct {
			// Identifier may be a username or an email address.
			Identifier string `json:"identifier" validate:"required"`
			Password   string `json:"password" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		acc, token, err := svc.Login(c.UserContext(), req.Identifier, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return fiber.NewError(http.StatusUnauthorized, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"account_id":   acc.ID,
			"username":     acc.Username,
			"access_token": token.AccessToken,
			"expires_in":   token.ExpiresIn,
		})
	})
}
