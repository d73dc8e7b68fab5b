package middleware

import (
    "net/http"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/redis/go-redis/v9"

    "github.com/zharpizza/landing/internal/phone"
)

const codeRateLimitPrefix = "rl:code:"

// CodeRateLimit limits verification code requests per phone number, or per
// client IP when the body carries no digits.
func CodeRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
    if maxPerMin <= 0 {
        maxPerMin = 5
    }
    return func(c *fiber.Ctx) error {
        if cache == nil {
            return c.Next() // no-op without Redis
        }
        var req struct {
            Phone string `json:"phone" form:"phone"`
        }
        _ = c.BodyParser(&req)
        subject := phone.Digits(phone.Format(req.Phone))
        if subject == "" {
            subject = c.IP()
        }
        key := codeRateLimitPrefix + subject
        cnt, err := cache.Incr(c.UserContext(), key).Result()
        if err != nil {
            return c.Next() // fail-open on cache errors
        }
        if cnt == 1 {
            cache.Expire(c.UserContext(), key, time.Minute)
        }
        if cnt > int64(maxPerMin) {
            return fiber.NewError(http.StatusTooManyRequests, "too many code requests, try again later")
        }
        return c.Next()
    }
}
