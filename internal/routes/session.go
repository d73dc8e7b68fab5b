package routes

import (
    "log/slog"
    "net/http"

    "github.com/gofiber/fiber/v2"

    "github.com/zharpizza/landing/internal/middleware"
)

// RegisterSessionRoutes exposes the visitor's Credential slot.
func RegisterSessionRoutes(r fiber.Router, s *site) {
    r.Get("/session", s.getSession)
    r.Delete("/session", func(c *fiber.Ctx) error {
        if err := s.logout(c); err != nil {
            return err
        }
        return c.SendStatus(http.StatusNoContent)
    })
}

func (s *site) getSession(c *fiber.Ctx) error {
    cred, ok, err := s.holder(c).Load(c.UserContext())
    if err != nil {
        s.logger.Error("load session", slog.Any("error", err))
        return fiber.NewError(http.StatusServiceUnavailable, "session store unavailable")
    }
    if !ok {
        return c.JSON(fiber.Map{"user": nil})
    }
    return c.JSON(fiber.Map{"user": cred})
}

func (s *site) logout(c *fiber.Ctx) error {
    if err := s.holder(c).Clear(c.UserContext()); err != nil {
        s.logger.Error("clear session", slog.Any("error", err))
        return fiber.NewError(http.StatusServiceUnavailable, "session store unavailable")
    }
    s.logger.Info("visitor signed out", slog.String("visitor_id", middleware.VisitorID(c)))
    return nil
}
