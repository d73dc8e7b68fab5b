package routes

import (
    "log/slog"
    "net/http"

    "github.com/gofiber/fiber/v2"

    "github.com/zharpizza/landing/internal/catalog"
    "github.com/zharpizza/landing/internal/middleware"
    "github.com/zharpizza/landing/internal/web"
)

// landing renders the page with the visitor's session and wizard.
func (s *site) landing(c *fiber.Ctx) error {
    ctx := c.UserContext()
    page := web.Page{Content: s.content, CodeHint: s.codeHint}

    menu, err := s.menu.List(ctx)
    if err != nil {
        s.logger.Warn("list menu, serving built-in menu", slog.Any("error", err))
        menu = catalog.DefaultMenu
    }
    page.Menu = menu

    cred, ok, err := s.holder(c).Load(ctx)
    if err != nil {
        return fiber.NewError(http.StatusServiceUnavailable, "session store unavailable")
    }
    if ok {
        page.User = &cred
    }

    if w, found := s.wizards.Peek(middleware.VisitorID(c)); found {
        page.Wizard = w.View()
    }

    c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
    return s.renderer.RenderPage(c, page)
}

// listMenu returns the menu as JSON.
func (s *site) listMenu(c *fiber.Ctx) error {
    menu, err := s.menu.List(c.UserContext())
    if err != nil {
        s.logger.Error("list menu", slog.Any("error", err))
        return fiber.NewError(http.StatusServiceUnavailable, "menu unavailable")
    }
    return c.JSON(fiber.Map{"products": menu})
}
