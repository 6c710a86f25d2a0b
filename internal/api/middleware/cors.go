package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/mcoot/cornhole/internal/middleware"
)

// CORS allows a browser front end served from one of origins to call the API
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
	})
	return c.Handler
}
