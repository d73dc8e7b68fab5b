package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zharpizza/landing/internal/logging"
)

func setupRateLimitApp(t *testing.T, max int) (*fiber.App, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Close()
		mr.Close()
	})

	app := fiber.New()
	app.Post("/code", CodeRateLimit(cache, max), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, mr
}

func postPhone(t *testing.T, app *fiber.App, body, contentType string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/code", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestCodeRateLimitPerPhone(t *testing.T) {
	app, mr := setupRateLimitApp(t, 2)

	for i := 0; i < 2; i++ {
		if got := postPhone(t, app, `{"phone":"89991234567"}`, fiber.MIMEApplicationJSON); got != fiber.StatusNoContent {
			t.Fatalf("request %d: expected 204 got %d", i, got)
		}
	}
	// Same number in display form counts against the same budget.
	if got := postPhone(t, app, "phone=%2B7+%28999%29+123-45-67", fiber.MIMEApplicationForm); got != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", got)
	}
	if got := postPhone(t, app, `{"phone":"89990000000"}`, fiber.MIMEApplicationJSON); got != fiber.StatusNoContent {
		t.Fatalf("expected other phone to pass, got %d", got)
	}

	mr.FastForward(2 * time.Minute)
	if got := postPhone(t, app, `{"phone":"89991234567"}`, fiber.MIMEApplicationJSON); got != fiber.StatusNoContent {
		t.Fatalf("expected window to reset, got %d", got)
	}
}

func TestCodeRateLimitWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Post("/code", CodeRateLimit(nil, 1), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	for i := 0; i < 3; i++ {
		if got := postPhone(t, app, `{"phone":"89991234567"}`, fiber.MIMEApplicationJSON); got != fiber.StatusNoContent {
			t.Fatalf("expected limiter to be a no-op, got %d", got)
		}
	}
}

func TestVisitorAndRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(), Visitor(time.Hour, false), Audit(logging.Discard()))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(VisitorID(c) + " " + RequestIDFrom(c))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if _, err := uuid.Parse(resp.Header.Get(requestIDHeader)); err != nil {
		t.Fatalf("expected generated request id, got %q", resp.Header.Get(requestIDHeader))
	}
	var visitor string
	for _, ck := range resp.Cookies() {
		if ck.Name == VisitorCookie {
			visitor = ck.Value
		}
	}
	if _, err := uuid.Parse(visitor); err != nil {
		t.Fatalf("expected visitor cookie, got %q", visitor)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: visitor})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if len(resp.Cookies()) != 0 {
		t.Fatalf("expected existing visitor to keep its cookie")
	}
}
