package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/cornhole/internal/middleware"
)

// Logging creates request logging middleware for the API. It must run
// outside Recovery so panics are logged with the request ID.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
