package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mailgate/mailgate/internal/account"
	"github.com/mailgate/mailgate/internal/auth"
	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/hash"
	"github.com/mailgate/mailgate/internal/logging"
	"github.com/mailgate/mailgate/internal/mail"
	"github.com/mailgate/mailgate/internal/middleware"
	"github.com/mailgate/mailgate/internal/verification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// The code store is the single shared capability both operations depend
	// on; there is no in-process fallback for it.
	if d.Cache == nil {
		return fmt.Errorf("redis is required")
	}
	if d.DB == nil && !d.Cfg.IsDev() {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Collaborators
	var directory account.Repository
	if d.DB != nil {
		directory = account.NewPostgresRepository(d.DB)
	} else {
		directory = account.NewMemoryRepository()
	}

	var sender mail.Sender
	if d.Cfg.SMTPHost != "" {
		sender = mail.NewSMTPSender(d.Cfg)
	} else {
		sender = mail.NewLogSender(logging.Component(d.Logger, "mail"))
	}

	store := verification.NewRedisCodeStore(d.Cache)
	hasher := hash.NewBcryptHasher(0)

	// Services and handlers
	issuer := verification.NewIssuer(store, directory, sender, d.Cfg.SMTPFrom,
		d.Cfg.CodeTTL, d.Cfg.ResendWindow, logging.Component(d.Logger, "issuer"))
	consumer := verification.NewConsumer(store, directory, hasher,
		logging.Component(d.Logger, "consumer"))
	authSvc := auth.NewService(d.Cfg, directory, hasher)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	sendLimiter := middleware.SendRateLimit(d.Cache, 10)
	RegisterVerificationRoutes(api, issuer, consumer, sendLimiter)
	RegisterAuthRoutes(api, authSvc)

	// Protected routes
	protected := api.Group("", middleware.JWTAuth(d.Cfg))
	protected.Get("/me", func(c *fiber.Ctx) error {
		accID, _ := c.Locals("account_id").(string)
		username, _ := c.Locals("username").(string)
		if accID == "" || username == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		acc, err := directory.FindByIdentifier(c.UserContext(), username)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "account not found")
		}
		return c.JSON(fiber.Map{
			"account_id": acc.ID,
			"username":   acc.Username,
			"email":      acc.Email,
			"created_at": acc.CreatedAt,
		})
	})

	return nil
}
