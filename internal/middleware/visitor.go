package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// VisitorCookie names the cookie that ties a browser to its wizard and session slot.
	VisitorCookie = "visitor_id"
	visitorLocal  = "visitor_id"
)

// Visitor assigns every browser a random visitor id kept in a long-lived
// cookie. Malformed ids are replaced.
func Visitor(maxAge time.Duration, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(VisitorCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     VisitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(visitorLocal, id)
		return c.Next()
	}
}

// VisitorID returns the id assigned by Visitor.
func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(visitorLocal).(string)
	return id
}
