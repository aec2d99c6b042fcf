package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// maxTrackedClients tope de limitadores en memoria antes de vaciar el mapa.
const maxTrackedClients = 10000

// RateLimiter limita peticiones por IP con token bucket (register/login).
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	log      *logger.Logger
}

// NewRateLimiter construye el limitador. rps <= 0 deshabilita el límite.
func NewRateLimiter(rps float64, burst int, log *logger.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		log:      log,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) >= maxTrackedClients {
		rl.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Handler middleware Fiber; responde 429 RATE_LIMITED al agotar el bucket.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.rate <= 0 {
			return c.Next()
		}
		key := c.IP()
		if !rl.getLimiter(key).Allow() {
			rl.log.Warn().
				Str("ip", key).
				Str("path", c.Path()).
				Msg("rate limit excedido")
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas solicitudes, intente más tarde",
			})
		}
		return c.Next()
	}
}
