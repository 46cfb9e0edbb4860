package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// accessLogEntry is the JSON shape of one request log line.
type accessLogEntry struct {
	TS        string `json:"ts"`
	RequestID string `json:"request_id"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Latency   string `json:"latency"`
	Error     string `json:"error,omitempty"`
}

// Logger writes one JSON access log line per request to stdout.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.UTC)
}

// LoggerWithWriter is like Logger but with a configurable destination and
// timestamp location, mainly for tests.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	enc := json.NewEncoder(w)
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		entry := accessLogEntry{
			TS:        time.Now().In(loc).Format(time.RFC3339Nano),
			RequestID: requestIDOf(c),
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    status,
			Latency:   time.Since(start).String(),
		}
		if err != nil {
			entry.Error = err.Error()
			if fiberErr, ok := err.(*fiber.Error); ok {
				entry.Status = fiberErr.Code
			}
		}

		// Encoding failures are swallowed; logging must never break a request.
		_ = enc.Encode(entry)

		return err
	}
}

func requestIDOf(c *fiber.Ctx) string {
	if v, ok := c.Locals(RequestIDLocalKey).(string); ok {
		return v
	}
	return ""
}
