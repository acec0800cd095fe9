package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/pkg/logger"
)

// localsError clave de Locals con el error interno de la respuesta.
const localsError = "internal_error"

// AccessLog registra una línea por request con el request id de requestid.New().
func AccessLog(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		logged := err
		if logged == nil {
			logged, _ = c.Locals(localsError).(error)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(logged)
		}
		rid, _ := c.Locals("requestid").(string)
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("profile_id", GetProfileID(c)).
			Msg("request")
		return err
	}
}
