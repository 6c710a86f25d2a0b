package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/cornhole/internal/api/apierr"
	"github.com/mcoot/cornhole/internal/middleware"
)

// Recovery creates panic recovery middleware for the API. The JSON error
// names the request ID so a report can be matched to the log.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	id := middleware.RequestID(r.Context())
	if id == "" {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}
	apierr.WriteError(w, apierr.NewInternalErrorf("Internal server error (request %s)", id))
}
