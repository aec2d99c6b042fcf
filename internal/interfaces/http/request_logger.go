package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/pkg/logger"
)

// httpObserver lo implementa *metrics.Metrics.
type httpObserver interface {
	ObserveHTTP(method, route, status string, d time.Duration)
}

// RequestLogger registra cada petición y alimenta el histograma de latencia.
// Usa la ruta registrada (no el path) como etiqueta para acotar la cardinalidad.
func RequestLogger(log *logger.Logger, obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if obs != nil {
			obs.ObserveHTTP(c.Method(), route, strconv.Itoa(status), elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}
