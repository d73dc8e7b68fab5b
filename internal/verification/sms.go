package verification

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/zharpizza/landing/internal/notification"
	"github.com/zharpizza/landing/internal/phone"
)

const (
	codeKeyPrefix     = "verification:code:"
	attemptsKeyPrefix = "verification:attempts:"
	defaultCodeTTL    = 5 * time.Minute
	// MaxAttempts is how many wrong guesses burn a code.
	MaxAttempts = 5
)

// SMS issues random four-digit codes, keeps a bcrypt hash of each in Redis
// and hands the plain code to a Notifier for delivery. A code is single use
// and is deleted after MaxAttempts wrong guesses.
type SMS struct {
	cache    *redis.Client
	notifier notification.Notifier
	ttl      time.Duration
	cost     int
}

// NewSMS builds a Redis-backed verifier. A non-positive ttl falls back to five minutes.
func NewSMS(cache *redis.Client, notifier notification.Notifier, ttl time.Duration) *SMS {
	if ttl <= 0 {
		ttl = defaultCodeTTL
	}
	return &SMS{cache: cache, notifier: notifier, ttl: ttl, cost: bcrypt.DefaultCost}
}

func codeKey(p string) string {
	return codeKeyPrefix + phone.Digits(phone.Format(p))
}

func attemptsKey(p string) string {
	return attemptsKeyPrefix + phone.Digits(phone.Format(p))
}

func generateCode() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}

// RequestCode stores a fresh code for phone, replacing any earlier one and
// its failed attempts, and sends it.
func (s *SMS) RequestCode(ctx context.Context, p string) error {
	code := generateCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}
	pipe := s.cache.TxPipeline()
	pipe.Set(ctx, codeKey(p), hash, s.ttl)
	pipe.Del(ctx, attemptsKey(p))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: store code: %v", ErrServiceUnavailable, err)
	}
	msg := notification.Message{
		Kind:        notification.KindVerificationCode,
		Destination: phone.Format(p),
		Body:        "ZharPizza code: " + code,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.cache.Del(ctx, codeKey(p))
		return fmt.Errorf("%w: send code: %v", ErrServiceUnavailable, err)
	}
	return nil
}

// VerifyCode checks code against the stored hash and consumes it on success.
// Every mismatch counts against the code; the last allowed one deletes it.
func (s *SMS) VerifyCode(ctx context.Context, p, code string) error {
	hash, err := s.cache.Get(ctx, codeKey(p)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("%w: load code: %v", ErrServiceUnavailable, err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(code)); err != nil {
		return s.recordMismatch(ctx, p)
	}
	if err := s.cache.Del(ctx, codeKey(p), attemptsKey(p)).Err(); err != nil {
		return fmt.Errorf("%w: consume code: %v", ErrServiceUnavailable, err)
	}
	return nil
}

func (s *SMS) recordMismatch(ctx context.Context, p string) error {
	pipe := s.cache.TxPipeline()
	incr := pipe.Incr(ctx, attemptsKey(p))
	pipe.Expire(ctx, attemptsKey(p), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: count attempt: %v", ErrServiceUnavailable, err)
	}
	if incr.Val() >= MaxAttempts {
		if err := s.cache.Del(ctx, codeKey(p), attemptsKey(p)).Err(); err != nil {
			return fmt.Errorf("%w: burn code: %v", ErrServiceUnavailable, err)
		}
	}
	return ErrCodeMismatch
}
