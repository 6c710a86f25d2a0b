package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/mcoot/cornhole/internal/api/apierr"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/auth"
)

type contextKey string

const profileContextKey contextKey = "profile"

// Session creates middleware requiring a valid cached login
func Session(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := authService.Current(r.Context())
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withProfile(r.Context(), profile)))
		})
	}
}

// OptionalSession adds the logged-in profile if there is a valid one
func OptionalSession(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := authService.Current(r.Context())
			switch {
			case err == nil:
				r = r.WithContext(withProfile(r.Context(), profile))
			case errors.Is(err, model.ErrNoSession), errors.Is(err, model.ErrInvalidSession):
			default:
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withProfile(ctx context.Context, profile *model.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, profile)
}

// GetProfile returns the logged-in profile from the request context
func GetProfile(ctx context.Context) *model.Profile {
	profile, _ := ctx.Value(profileContextKey).(*model.Profile)
	return profile
}
