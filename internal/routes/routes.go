package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zharpizza/landing/internal/catalog"
	"github.com/zharpizza/landing/internal/config"
	"github.com/zharpizza/landing/internal/middleware"
	"github.com/zharpizza/landing/internal/notification"
	"github.com/zharpizza/landing/internal/session"
	"github.com/zharpizza/landing/internal/verification"
	"github.com/zharpizza/landing/internal/web"
	"github.com/zharpizza/landing/internal/wizard"
)

// visitorCookieTTL keeps the visitor id alive for a year.
const visitorCookieTTL = 365 * 24 * time.Hour

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
	// Notifier delivers SMS codes. Defaults to a LoggerNotifier.
	Notifier notification.Notifier
}

// site bundles the collaborators shared by the page, wizard and session handlers.
type site struct {
	cfg      config.Config
	logger   *slog.Logger
	menu     catalog.Repository
	sessions session.Store
	wizards  *wizard.Registry
	renderer *web.Renderer
	content  web.Content
	validate *validator.Validate
	// codeHint is shown on the code step when codes are mocked.
	codeHint string
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	s, err := newSite(d)
	if err != nil {
		return err
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Visitor(visitorCookieTTL, d.Cfg.CookieSecure))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	limiter := middleware.CodeRateLimit(d.Cache, d.Cfg.CodeRequestsPerMinute)

	// Page and form posts
	app.Get("/", s.landing)
	RegisterAuthFormRoutes(app, s, limiter)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.RequestIDFrom(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
	api.Get("/menu", s.listMenu)
	RegisterSessionRoutes(api, s)
	RegisterWizardRoutes(api, s, limiter)

	return nil
}

// newSite builds the stores, verifier and wizard registry for d.
func newSite(d Deps) (*site, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	s := &site{
		cfg:      d.Cfg,
		logger:   d.Logger,
		renderer: renderer,
		content:  web.DefaultContent(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	if d.DB != nil {
		s.menu = catalog.NewPostgresRepository(d.DB)
	} else {
		s.menu = catalog.NewMemoryRepository(nil)
	}
	if d.Cache != nil {
		s.sessions = session.NewRedisStore(d.Cache, d.Cfg.SessionTTL)
	} else {
		s.sessions = session.NewMemoryStore()
	}
	verifier := newVerifier(d)
	if mock, ok := verifier.(*verification.Mock); ok {
		s.codeHint = mock.Code
	}
	s.wizards = wizard.NewRegistry(func(visitorID string) *wizard.Wizard {
		return wizard.New(verifier, s.saveCredential(visitorID))
	}, d.Cfg.WizardIdleTTL)
	return s, nil
}

func newVerifier(d Deps) verification.Verifier {
	if d.Cfg.VerificationMode == config.VerificationModeSMS && d.Cache != nil {
		notifier := d.Notifier
		if notifier == nil {
			notifier = notification.NewLoggerNotifier(d.Logger)
		}
		return verification.NewSMS(d.Cache, notifier, d.Cfg.CodeTTL)
	}
	return verification.NewMock(d.Cfg.MockCode, d.Cfg.CodeSendDelay, d.Cfg.CodeVerifyDelay)
}

// saveCredential is the wizard's success callback for one visitor.
func (s *site) saveCredential(visitorID string) wizard.SuccessFunc {
	return func(ctx context.Context, cred session.Credential) error {
		if err := session.NewHolder(s.sessions, visitorID).Save(ctx, cred); err != nil {
			s.logger.Error("save session", slog.String("visitor_id", visitorID), slog.Any("error", err))
			return err
		}
		s.logger.Info("visitor signed in", slog.String("visitor_id", visitorID), slog.String("phone", cred.Phone))
		return nil
	}
}

func (s *site) holder(c *fiber.Ctx) *session.Holder {
	return session.NewHolder(s.sessions, middleware.VisitorID(c))
}
