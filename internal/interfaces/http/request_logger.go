package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

// RequestLogger registra una línea por petición con método, ruta, estado y duración.
// Los errores internos que writeError ocultó al cliente aparecen aquí.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		logErr := err
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		} else if hidden, ok := c.Locals(localError).(error); ok {
			logErr = hidden
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(logErr)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http")
		return err
	}
}
