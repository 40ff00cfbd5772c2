package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mailgate/mailgate/internal/account"
	"github.com/mailgate/mailgate/internal/validate"
	"github.com/mailgate/mailgate/internal/verification"
)

// RegisterVerificationRoutes wires the code-request and confirm endpoints.
func RegisterVerificationRoutes(r fiber.Router, issuer *verification.Issuer, consumer *verification.Consumer, sendLimiter fiber.Handler) {
	group := r.Group("/verification")

	requestCode := func(c *fiber.Ctx) error {
		var req struct {
			Email     string `json:"email" validate:"required,email"`
			SessionID string `json:"session_id" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := issuer.RequestCode(c.UserContext(), req.Email, req.SessionID); err != nil {
			return fiber.NewError(issueStatus(err), err.Error())
		}
		return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "code_sent"})
	}
	if sendLimiter != nil {
		group.Post("/request", sendLimiter, requestCode)
	} else {
		group.Post("/request", requestCode)
	}

	group.Post("/confirm", func(c *fiber.Ctx) error {
		var req struct {
			Username  string `json:"username" validate:"required,min=3"`
			Password  string `json:"password" validate:"required,min=8"`
			Email     string `json:"email" validate:"required,email"`
			Code      string `json:"code" validate:"required,len=6,numeric"`
			SessionID string `json:"session_id" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		err := consumer.ConfirmAndRegister(c.UserContext(), verification.Registration{
			Username:  req.Username,
			Password:  req.Password,
			Email:     req.Email,
			Code:      req.Code,
			SessionID: req.SessionID,
		})
		if err != nil {
			return fiber.NewError(confirmStatus(err), err.Error())
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{"status": "registered", "username": req.Username})
	})
}

func issueStatus(err error) int {
	switch {
	case errors.Is(err, verification.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, verification.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, verification.ErrMailDelivery):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func confirmStatus(err error) int {
	switch {
	case errors.Is(err, verification.ErrNoPendingRequest):
		return http.StatusNotFound
	case errors.Is(err, verification.ErrCodeExpired):
		return http.StatusGone
	case errors.Is(err, verification.ErrCodeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, verification.ErrPersist):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
